package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpx "github.com/geocoder89/coursehub/internal/http"
	"github.com/geocoder89/coursehub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	r := gin.New()
	r.SetHTMLTemplate(httpx.Templates())

	limiter := middlewares.NewRateLimiter(3, time.Minute)
	r.POST("/login", limiter.RateLimiterMiddleware(middlewares.KeyByIP), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	attempt := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:50000"
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 3; i++ {
		if w := attempt(); w.Code != http.StatusOK {
			t.Fatalf("attempt %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := attempt()

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 after the burst", w.Code)
	}

	if w.Header().Get("Retry-After") == "" {
		t.Fatal("expected a Retry-After header")
	}
}

func TestRateLimiterKeysByClient(t *testing.T) {
	r := gin.New()
	r.SetHTMLTemplate(httpx.Templates())

	limiter := middlewares.NewRateLimiter(1, time.Minute)
	r.POST("/login", limiter.RateLimiterMiddleware(middlewares.KeyByIP), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	attempt := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := attempt("203.0.113.7:50000"); code != http.StatusOK {
		t.Fatalf("first client: status = %d, want 200", code)
	}

	if code := attempt("203.0.113.7:50001"); code != http.StatusTooManyRequests {
		t.Fatalf("same client again: status = %d, want 429", code)
	}

	// a different client gets its own bucket
	if code := attempt("198.51.100.9:40000"); code != http.StatusOK {
		t.Fatalf("second client: status = %d, want 200", code)
	}
}
