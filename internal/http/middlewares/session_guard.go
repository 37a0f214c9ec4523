package middlewares

import (
	"net/http"

	"github.com/geocoder89/coursehub/internal/domain/user"
	"github.com/geocoder89/coursehub/internal/session"
	"github.com/gin-gonic/gin"
)

// Keep this interface small so tests can fake it easily.
type CookieVerifier interface {
	Verify(raw string) (string, error)
}

type Guard struct {
	cookies  CookieVerifier
	sessions session.Store
}

func NewGuard(cookies CookieVerifier, sessions session.Store) *Guard {
	return &Guard{cookies: cookies, sessions: sessions}
}

// RequireSession gates every student-facing page. Any failure, from a
// missing cookie to an expired server-side record, funnels the browser to
// the login form rather than surfacing a 401.
func (g *Guard) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookieName)

		if err != nil || raw == "" {
			redirectToLogin(c)
			return
		}

		sid, err := g.cookies.Verify(raw)

		if err != nil {
			redirectToLogin(c)
			return
		}

		sess, err := g.sessions.Get(c.Request.Context(), sid)

		if err != nil {
			redirectToLogin(c)
			return
		}

		// Stash identity on the context for handlers downstream
		c.Set(ctxSessionIDKey, sid)
		c.Set(ctxUserIDKey, sess.UserID)
		c.Set(ctxEmailKey, sess.Email)
		c.Set(ctxRoleKey, sess.Role)

		c.Next()
	}
}

// RequireAdmin assumes RequireSession already ran. A wrong role is a 403
// page, not a redirect: the resource exists, the user just cannot reach it.
func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok {
			redirectToLogin(c)
			return
		}

		if !role.CanManageContent() {
			c.HTML(http.StatusForbidden, "forbidden.html", gin.H{
				"Title": "Forbidden",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// Helpers so handlers don't need to know the magic keys.

func SessionIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxSessionIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}

func RoleFromContext(c *gin.Context) (user.Role, bool) {
	v, ok := c.Get(ctxRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(user.Role)
	return role, ok
}
