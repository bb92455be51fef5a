package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"party_phonecountry/platform/apperr"
	"party_phonecountry/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type jwtConfig struct{}

func (jwtConfig) GetJWTAccessSecret() string { return testSecret }

type rateConfig struct{}

func (rateConfig) GetRateLimitPerSecond() float64 { return 0.001 }
func (rateConfig) GetRateLimitBurst() int         { return 1 }

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthRequired(jwtConfig{}))
	r.GET("/me", func(c *gin.Context) {
		id := MustGetIdentity(c)
		if id == nil {
			return
		}
		OK(c, gin.H{"id": id.UserID().String(), "admin": id.HasRole(RoleAdmin)})
	})
	r.GET("/admin", RequireRole(RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), errMissingToken)
}

func TestAuthRequiredRejectsRefreshToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredSetsIdentity(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, jwt.MapClaims{
		"sub":   userID.String(),
		"type":  "access",
		"roles": []string{"admin"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":"`+userID.String()+`","admin":true}`, rec.Body.String())
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":   uuid.NewString(),
		"type":  "access",
		"roles": []string{"user"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	r := gin.New()
	r.Use(NewIPRateLimiter(rateConfig{}, logger.Discard()).RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRequestIDEchoesOrGenerates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
	require.NoError(t, err)
}

func TestHandleErrorMapsKinds(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"warning", apperr.Warning("fixed line"), http.StatusPreconditionRequired, "warning"},
		{"validation", apperr.Validation("not valid"), http.StatusBadRequest, "validation"},
		{"not found", apperr.NotFound("missing"), http.StatusNotFound, ""},
		{"plain", http.ErrHandlerTimeout, http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			require.True(t, HandleError(c, tc.err))
			require.Equal(t, tc.status, rec.Code)
			if tc.kind != "" {
				require.Contains(t, rec.Body.String(), `"kind":"`+tc.kind+`"`)
			}
		})
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.False(t, HandleError(c, nil))
}

func countLimiters(l *IPRateLimiter) int {
	n := 0
	l.limiters.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

func TestRateLimiterEvictsIdleRefilledLimiters(t *testing.T) {
	clock := time.Now()
	l := NewIPRateLimiter(rateConfig{}, logger.Discard())
	l.now = func() time.Time { return clock }

	l.getLimiter("10.0.0.1")
	l.getLimiter("10.0.0.2").Allow()
	require.Equal(t, 2, countLimiters(l))

	clock = clock.Add(limiterIdleTTL + time.Minute)
	l.getLimiter("10.0.0.3")

	_, idle := l.limiters.Load("10.0.0.1")
	require.False(t, idle, "expected idle full limiter evicted")
	_, drained := l.limiters.Load("10.0.0.2")
	require.True(t, drained, "expected limiter with spent tokens kept")
	require.Equal(t, 2, countLimiters(l))
}
