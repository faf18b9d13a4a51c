package response

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, perPage, total int
		wantPages            int
	}{
		{1, 10, 0, 0},
		{1, 10, 10, 1},
		{1, 10, 11, 2},
		{3, 25, 51, 3},
	}
	for _, tt := range tests {
		p := NewPagination(tt.page, tt.perPage, tt.total)
		if p.TotalPages != tt.wantPages {
			t.Errorf("NewPagination(%d, %d, %d).TotalPages = %d, want %d",
				tt.page, tt.perPage, tt.total, p.TotalPages, tt.wantPages)
		}
		if p.Page != tt.page || p.PerPage != tt.perPage || p.TotalItems != tt.total {
			t.Errorf("pagination fields not carried: %+v", p)
		}
	}
}

func requestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		id, _ := c.Get(ContextKeyRequestID)
		c.String(http.StatusOK, id.(string))
	})
	return r
}

func TestRequestIDKeepsCallerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "gateway-trace-42")
	w := httptest.NewRecorder()
	requestIDRouter().ServeHTTP(w, req)

	if w.Body.String() != "gateway-trace-42" {
		t.Errorf("context id = %q, want caller id", w.Body.String())
	}
	if got := w.Header().Get("X-Request-ID"); got != "gateway-trace-42" {
		t.Errorf("echoed id = %q, want caller id", got)
	}
}

func TestRequestIDReplacesOversizedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 200))
	w := httptest.NewRecorder()
	requestIDRouter().ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	if id == "" || len(id) > maxRequestIDLen {
		t.Errorf("replacement id = %q, want fresh UUID", id)
	}
	if strings.Contains(id, "xxxx") {
		t.Errorf("oversized caller id leaked through: %q", id)
	}
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	requestIDRouter().ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("no request id assigned")
	}
}
