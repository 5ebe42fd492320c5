package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	gwerrors "github.com/jrsteele09/go-login-gateway/internal/errors"
)

const contentTypeHTML = "text/html; charset=utf-8"

// LandingPageData contains data for rendering the landing page
type LandingPageData struct {
	AuthorizeURL string
	UserName     string
}

// LandingPageHandler renders the landing page (GET /). Every visit
// mints a fresh anti-forgery state token, invalidating any earlier one
// for the session, and links to the provider's authorize endpoint.
func (s *Server) LandingPageHandler() http.HandlerFunc {
	indexTmpl, err := ParseTemplate("index.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse index template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		rs := s.requestSession(r)

		authorizeURL, err := s.handshake.BeginLogin(r.Context(), rs.session)
		if err != nil {
			log.Err(err).Msg("Failed to begin login")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		rs.saved = true // BeginLogin persisted the session
		s.setSessionCookie(w, rs.session)

		data := LandingPageData{
			AuthorizeURL: authorizeURL,
			UserName:     rs.session.UserName,
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := indexTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render index template")
		}
	}
}

// OAuthCallbackHandler completes the login (GET /oidc). Validation,
// exchange and session rotation happen in the handshake; any failure
// surfaces as a generic login error with no hint of which check failed.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs := s.requestSession(r)

		query := r.URL.Query()
		authenticated, err := s.handshake.Callback(r.Context(), rs.session, query.Get("state"), query.Get("code"))
		if err != nil {
			switch {
			case gwerrors.Is(err, gwerrors.ErrMissingCallbackParams):
				http.Error(w, "Login failed", http.StatusBadRequest)
			case gwerrors.Is(err, gwerrors.ErrInvalidState):
				log.Warn().Str("session_id", rs.session.ID).Msg("state mismatch on callback")
				http.Error(w, "Login failed", http.StatusUnauthorized)
			default:
				log.Err(err).Msg("Login callback failed")
				http.Error(w, "Login failed", http.StatusInternalServerError)
			}
			return
		}

		rs.session = authenticated
		rs.saved = true // the handshake persisted the rotated session
		s.setSessionCookie(w, rs.session)

		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// IdentityHandler reports the identity bound to the session (GET /me).
// The rolling touch in the session middleware extends the session as a
// side effect of the read.
func (s *Server) IdentityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs := s.requestSession(r)

		w.Header().Set("Content-Type", "application/json")
		if !rs.session.Authenticated() {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "unauthenticated"})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{
			"userId":   rs.session.UserID,
			"userName": rs.session.UserName,
		})
	}
}

// LogoutHandler destroys the session and clears the cookie
// (POST /auth/logout). Logging out without a session succeeds.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs := s.requestSession(r)

		if !rs.session.Fresh() {
			if err := s.sessions.Destroy(r.Context(), rs.session); err != nil {
				log.Err(err).Msg("Failed to destroy session")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}
		rs.saved = true

		s.clearSessionCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}
