package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "party_phonecountry/internal/http"
	"party_phonecountry/platform/httpkit"
	"party_phonecountry/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type routerConfig struct{}

func (routerConfig) GetHTTPAddr() string            { return ":0" }
func (routerConfig) GetCORSAllowAll() bool          { return false }
func (routerConfig) GetCORSOrigins() []string       { return []string{"http://localhost:4200"} }
func (routerConfig) GetCORSAllowCreds() bool        { return true }
func (routerConfig) GetJWTAccessSecret() string     { return "router-secret" }
func (routerConfig) GetRateLimitPerSecond() float64 { return 100 }
func (routerConfig) GetRateLimitBurst() int         { return 100 }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/ping", func(c *gin.Context) { httpkit.OK(c, gin.H{"pong": true}) })
	ctx.Protected.GET("/secret", func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newApp(health apphttp.HealthChecker) *apphttp.App {
	return &apphttp.App{
		Config:  routerConfig{},
		Logger:  logger.Discard(),
		Health:  health,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("metrics")) }),
		Modules: []apphttp.Module{pingModule{}},
	}
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealthReportsDatabaseState(t *testing.T) {
	rec := serve(New(newApp(pinger{})), http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(New(newApp(pinger{err: errors.New("down")})), http.MethodGet, "/api/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestModuleRoutesAreMounted(t *testing.T) {
	engine := New(newApp(pinger{}))

	rec := serve(engine, http.MethodGet, "/api/v1/ping")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(httpkit.HeaderRequestID))

	rec = serve(engine, http.MethodGet, "/api/v1/secret")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(New(newApp(nil)), http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "metrics", rec.Body.String())
}
