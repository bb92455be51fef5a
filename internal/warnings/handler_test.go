package warnings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"party_phonecountry/platform/httpkit"
	"party_phonecountry/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newWarningsRouter(store Store, user uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, user)
		c.Next()
	})
	NewHandler(store, validator.New()).RegisterRoutes(r.Group("/warnings"))
	return r
}

func TestAcknowledgeStoresPermanentAck(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	user := uuid.New()
	key := "warn_mobile_line_phone." + uuid.NewString()

	req := httptest.NewRequest(http.MethodPost, "/warnings/"+key+"/acknowledge", strings.NewReader(`{"always":true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newWarningsRouter(store, user).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"key":"`+key+`","always":true}`, rec.Body.String())

	for i := 0; i < 2; i++ {
		ok, err := store.Consume(context.Background(), user, key)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestAcknowledgeWithoutBodyIsOneShot(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	user := uuid.New()
	key := "warn_fixed_line_phone." + uuid.NewString()

	rec := httptest.NewRecorder()
	newWarningsRouter(store, user).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/warnings/"+key+"/acknowledge", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	ok, _ := store.Consume(context.Background(), user, key)
	require.True(t, ok)
	ok, _ = store.Consume(context.Background(), user, key)
	require.False(t, ok)
}

func TestAcknowledgeRejectsUnknownKeys(t *testing.T) {
	for _, key := range []string{"anything", "warn_fixed_line_phone.not-a-uuid", "warn_other." + uuid.NewString()} {
		rec := httptest.NewRecorder()
		newWarningsRouter(NewMemoryStore(time.Hour), uuid.New()).
			ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/warnings/"+key+"/acknowledge", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, key)
	}
}
