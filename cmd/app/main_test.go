package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func memoryEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("ENRICHMENT_PROVIDER", "gemini")
	t.Setenv("ENRICHMENT_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("MAIL_ENABLED", "false")
}

func TestAppGraph(t *testing.T) {
	require.NoError(t, fx.ValidateApp(appOptions()))
}

func TestRouterWiring(t *testing.T) {
	memoryEnv(t)
	gin.SetMode(gin.TestMode)

	var engine *gin.Engine
	fxtest.New(t, appOptions(), fx.Populate(&engine))
	require.NotNil(t, engine)

	cases := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/templates", http.StatusOK},
		{http.MethodGet, "/admin/metrics", http.StatusNotFound},
		{http.MethodGet, "/admin/metrics?admin=true", http.StatusOK},
		{http.MethodGet, "/diagnostics/sessions/unknown", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, tc.want, w.Code, tc.target)
	}
}
