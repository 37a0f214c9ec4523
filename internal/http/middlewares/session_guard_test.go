package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geocoder89/coursehub/internal/auth"
	"github.com/geocoder89/coursehub/internal/domain/user"
	httpx "github.com/geocoder89/coursehub/internal/http"
	"github.com/geocoder89/coursehub/internal/http/middlewares"
	"github.com/geocoder89/coursehub/internal/session"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func guardedRouter(guard *middlewares.Guard) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(httpx.Templates())

	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }

	r.GET("/protected", guard.RequireSession(), ok)
	r.GET("/admin-only", guard.RequireSession(), guard.RequireAdmin(), ok)

	return r
}

func sessionCookie(t *testing.T, m *auth.Manager, store session.Store, role user.Role) *http.Cookie {
	t.Helper()

	sid, err := store.Create(context.Background(), session.Session{
		UserID: "u1",
		Email:  "someone@example.com",
		Role:   role,
	})

	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	raw, err := m.Mint(sid)

	if err != nil {
		t.Fatalf("mint cookie: %v", err)
	}

	return &http.Cookie{Name: middlewares.SessionCookieName, Value: raw}
}

func TestRequireSessionRedirectsWithoutCookie(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	store := session.NewMemoryStore(time.Hour)
	r := guardedRouter(middlewares.NewGuard(m, store))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}

	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}
}

func TestRequireSessionRejectsForgedCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	r := guardedRouter(middlewares.NewGuard(auth.NewManager("real-secret", time.Hour), store))

	// cookie minted with a different secret
	forged := sessionCookie(t, auth.NewManager("attacker-secret", time.Hour), store, user.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(forged)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect to login", w.Code)
	}
}

func TestRequireSessionRejectsExpiredSession(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	store := session.NewMemoryStore(5 * time.Millisecond)
	r := guardedRouter(middlewares.NewGuard(m, store))

	cookie := sessionCookie(t, m, store, user.RoleStudent)

	time.Sleep(20 * time.Millisecond)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect after session expiry", w.Code)
	}
}

func TestRequireSessionPassesValidSession(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	store := session.NewMemoryStore(time.Hour)
	r := guardedRouter(middlewares.NewGuard(m, store))

	cookie := sessionCookie(t, m, store, user.RoleStudent)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireAdminForbidsStudent(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	store := session.NewMemoryStore(time.Hour)
	r := guardedRouter(middlewares.NewGuard(m, store))

	cookie := sessionCookie(t, m, store, user.RoleStudent)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	// wrong role is a 403 page, not a redirect
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	if loc := w.Header().Get("Location"); loc != "" {
		t.Fatalf("unexpected redirect to %q", loc)
	}
}

func TestRequireAdminPassesAdmin(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	store := session.NewMemoryStore(time.Hour)
	r := guardedRouter(middlewares.NewGuard(m, store))

	cookie := sessionCookie(t, m, store, user.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
