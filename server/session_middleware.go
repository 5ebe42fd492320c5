package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-login-gateway/sessions"
)

const (
	// sessionCookieName is the name of the rolling session cookie
	sessionCookieName = "gatewaySessionId"
)

type sessionContextKey struct{}

// requestSession is the per-request view of the session. Handlers that
// persist the session mark it saved; anything else gets a best-effort
// rolling touch after the handler returns.
type requestSession struct {
	session *sessions.Session
	saved   bool
}

// SessionMiddleware loads the session named by the request cookie, or
// mints a fresh one when the cookie is absent or the record expired,
// and makes it available to handlers via the request context.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var session *sessions.Session
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			loaded, err := s.sessions.Get(ctx, cookie.Value)
			if err != nil {
				log.Err(err).Msg("Failed to load session")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			session = loaded
		}
		if session == nil {
			session = s.sessions.New()
		}

		rs := &requestSession{session: session}
		r = r.WithContext(context.WithValue(ctx, sessionContextKey{}, rs))

		// Rolling sessions: a request that only reads the session still
		// gets its cookie max-age re-sent, so the browser's expiry keeps
		// pace with the touched record. Handlers that persist the session
		// set their own cookie, so the roll only fires for untouched ones.
		rw := &sessionResponseWriter{ResponseWriter: w, beforeWrite: func() {
			if !rs.saved && !rs.session.Fresh() {
				s.setSessionCookie(w, rs.session)
			}
		}}

		next(rw, r)

		// Extend the stored expiry to match. Failures inside Touch are
		// logged there.
		if !rs.saved && !rs.session.Fresh() {
			s.sessions.Touch(r.Context(), rs.session)
		}
	}
}

// sessionResponseWriter defers the rolling Set-Cookie until just before
// the first byte of the response, after which headers are immutable.
type sessionResponseWriter struct {
	http.ResponseWriter
	beforeWrite func()
	wroteHeader bool
}

func (w *sessionResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.beforeWrite()
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sessionResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (s *Server) requestSession(r *http.Request) *requestSession {
	rs, _ := r.Context().Value(sessionContextKey{}).(*requestSession)
	return rs
}

func (s *Server) setSessionCookie(w http.ResponseWriter, session *sessions.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.GetCookieSecure(),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(session.MaxAge(s.config.GetSessionTTL()).Seconds()),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.GetCookieSecure(),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}
