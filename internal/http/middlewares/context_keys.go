package middlewares

const (
	ctxSessionIDKey = "session.id"
	ctxUserIDKey    = "session.userID"
	ctxEmailKey     = "session.email"
	ctxRoleKey      = "session.role"

	CtxRequestID = "request_id"
)

// SessionCookieName is the browser cookie carrying the signed session ID.
const SessionCookieName = "coursehub_session"
