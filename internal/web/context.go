package web

import (
	"context"
	"net/http"
	"time"

	"github.com/JonMunkholm/sweeper/internal/core"
	"github.com/JonMunkholm/sweeper/internal/logging"
	appmw "github.com/JonMunkholm/sweeper/internal/web/middleware"
)

// SessionHeader lets API clients carry their session without cookies.
const SessionHeader = appmw.SessionHeader

type sessionKey struct{}

// withSession stores the request's session in ctx.
func withSession(ctx context.Context, sess *core.Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey{}, sess)
	return logging.WithSessionID(ctx, sess.ID)
}

// sessionFrom returns the session attached by the session middleware.
func sessionFrom(ctx context.Context) *core.Session {
	sess, _ := ctx.Value(sessionKey{}).(*core.Session)
	return sess
}

// sessionMiddleware resolves the caller's session from the X-Session-ID
// header or the session cookie, starting a new one when neither names a
// live session. The id is always echoed back in the header and the cookie.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" {
			if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
				id = c.Value
			}
		}

		var sess *core.Session
		if id != "" {
			sess, _ = s.service.Session(id)
		}
		if sess == nil {
			sess = s.service.NewSession()
		}

		s.setSessionCookie(w, sess.ID)
		w.Header().Set(SessionHeader, sess.ID)
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id string) {
	cookie := &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if s.cfg.Session.IdleTimeout > 0 {
		cookie.MaxAge = int(s.cfg.Session.IdleTimeout / time.Second)
	}
	http.SetCookie(w, cookie)
}
