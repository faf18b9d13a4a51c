package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func brotliRouter(minLength int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BrotliWithConfig(BrotliConfig{MinLength: minLength}))

	pdf := bytes.Repeat([]byte("%PDF"), 512)
	servePDF := func(c *gin.Context) {
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
	r.POST("/api/v1/papers/generate", servePDF)
	r.POST("/api/v1/papers/generate-only", servePDF)
	r.GET("/api/v1/papers/7/download", servePDF)

	r.GET("/api/v1/boards", func(c *gin.Context) {
		c.String(http.StatusOK, strings.Repeat("boards ", 200))
	})
	return r
}

func brotliRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Accept-Encoding", "br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBrotliCompressesLargeJSON(t *testing.T) {
	w := brotliRequest(brotliRouter(64), http.MethodGet, "/api/v1/boards")
	if got := w.Header().Get("Content-Encoding"); got != "br" {
		t.Fatalf("Content-Encoding = %q, want br", got)
	}
}

func TestBrotliPassesPDFResponsesThrough(t *testing.T) {
	r := brotliRouter(64)
	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPost, "/api/v1/papers/generate"},
		{http.MethodPost, "/api/v1/papers/generate-only"},
		{http.MethodGet, "/api/v1/papers/7/download"},
	} {
		w := brotliRequest(r, tc.method, tc.path)
		if got := w.Header().Get("Content-Encoding"); got != "" {
			t.Errorf("%s %s: Content-Encoding = %q, want uncompressed", tc.method, tc.path, got)
		}
		if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
			t.Errorf("%s %s: body is not the raw PDF stream", tc.method, tc.path)
		}
	}
}

func TestBrotliSkipsSmallBodies(t *testing.T) {
	r := brotliRouter(1 << 20)
	w := brotliRequest(r, http.MethodGet, "/api/v1/boards")
	if got := w.Header().Get("Content-Encoding"); got != "" {
		t.Errorf("Content-Encoding = %q, want uncompressed below min length", got)
	}
}
