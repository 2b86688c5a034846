package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTraceIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	w := serve(r, http.MethodGet, "/", nil)
	_, err := uuid.Parse(w.Header().Get(TraceIDHeader))
	assert.NoError(t, err)
	assert.Equal(t, w.Header().Get(TraceIDHeader), w.Body.String())

	incoming := uuid.NewString()
	w = serve(r, http.MethodGet, "/", http.Header{TraceIDHeader: {incoming}})
	assert.Equal(t, incoming, w.Body.String())

	w = serve(r, http.MethodGet, "/", http.Header{TraceIDHeader: {"not-a-uuid"}})
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestAdminFlagMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/admin/metrics", AdminFlagMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/admin/metrics?admin=true", nil).Code)
	for _, target := range []string{"/admin/metrics", "/admin/metrics?admin=1", "/admin/metrics?admin=TRUE", "/admin/metrics?admin="} {
		assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, target, nil).Code, target)
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://fddeveloper.com.br"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/", http.Header{"Origin": {"https://fddeveloper.com.br"}})
	assert.Equal(t, "https://fddeveloper.com.br", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/", http.Header{"Origin": {"https://evil.example"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "/", http.Header{"Origin": {"https://fddeveloper.com.br"}})
	assert.Equal(t, http.StatusNoContent, w.Code)

	open := gin.New()
	open.Use(CORSMiddleware(nil))
	open.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = serve(open, http.MethodGet, "/", nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/ok", nil)
	serve(r, http.MethodGet, "/boom", nil)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	}
}
