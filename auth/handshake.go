// Package auth orchestrates the OAuth2 Authorization Code flow against
// the external OpenID-Connect provider: anti-forgery state issuance,
// callback validation, code exchange, identity binding and session
// rotation.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-login-gateway/internal/config"
	gwerrors "github.com/jrsteele09/go-login-gateway/internal/errors"
	"github.com/jrsteele09/go-login-gateway/sessions"
	"github.com/jrsteele09/go-login-gateway/users"
)

// Handshake drives the two-state login flow: UNAUTHENTICATED sessions
// are challenged with a one-time state token, and a valid callback
// promotes them to AUTHENTICATED under a rotated session id.
type Handshake struct {
	oauth    *oauth2.Config
	users    users.Repo
	sessions *sessions.Manager
}

func NewHandshake(cfg config.OAuthConfig, userRepo users.Repo, sessionManager *sessions.Manager) *Handshake {
	return &Handshake{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURI(),
			Scopes:       cfg.GetScopes(),
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.GetAuthorizeURL(),
				TokenURL: cfg.GetTokenURL(),
				// The provider's token endpoint takes the client
				// credentials form-encoded, not as basic auth.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		users:    userRepo,
		sessions: sessionManager,
	}
}

// BeginLogin mints a fresh anti-forgery state token, persists it on the
// session and returns the provider's authorize URL. Every call mints a
// new token, invalidating any earlier one for the session.
func (h *Handshake) BeginLogin(ctx context.Context, session *sessions.Session) (string, error) {
	state := uuid.NewString()
	session.OAuth2State = state

	if err := h.sessions.Save(ctx, session); err != nil {
		return "", gwerrors.Wrapf(err, "[Handshake BeginLogin] failed to persist state")
	}

	return h.oauth.AuthCodeURL(state), nil
}

// Callback validates the provider's redirect and completes the login.
// The chain is validate -> exchange -> derive -> persist -> rotate ->
// bind; a failure at any step aborts the whole transition with no
// persisted side effects past the failing step. On success the returned
// session is a new record under a new id with the identity bound, and
// the pre-auth session no longer exists.
func (h *Handshake) Callback(ctx context.Context, session *sessions.Session, state, code string) (*sessions.Session, error) {
	if state == "" || code == "" {
		return nil, gwerrors.ErrMissingCallbackParams
	}

	// A session that never stored a challenge (expired mid-flow, or a
	// replayed/cross-session callback) fails closed.
	if session.OAuth2State == "" ||
		subtle.ConstantTimeCompare([]byte(state), []byte(session.OAuth2State)) != 1 {
		return nil, gwerrors.ErrInvalidState
	}

	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, gwerrors.Wrapf(err, "[Handshake Callback] code exchange failed")
	}

	subject, userName, err := decodeIdentity(token.AccessToken)
	if err != nil {
		return nil, gwerrors.Wrapf(err, "[Handshake Callback] failed to decode identity")
	}

	if err := h.users.Upsert(ctx, users.User{
		ID:           subject,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}); err != nil {
		return nil, gwerrors.Wrapf(err, "[Handshake Callback] failed to upsert credentials")
	}

	// Rotate the session id so an attacker who observed the pre-auth
	// cookie cannot inherit the authenticated session.
	authenticated, err := h.sessions.Regenerate(ctx, session)
	if err != nil {
		return nil, gwerrors.Wrapf(err, "[Handshake Callback] failed to regenerate session")
	}

	authenticated.UserID = subject
	authenticated.UserName = userName
	if err := h.sessions.Save(ctx, authenticated); err != nil {
		return nil, gwerrors.Wrapf(err, "[Handshake Callback] failed to save session")
	}

	return authenticated, nil
}

// decodeIdentity extracts the subject and display name from the access
// token's claims. The token was just obtained over a direct,
// authenticated channel to the provider, so the signature is not
// verified against the provider's published keys.
func decodeIdentity(accessToken string) (subject, userName string, err error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return "", "", fmt.Errorf("failed to parse access token: %w", err)
	}

	subject, err = claims.GetSubject()
	if err != nil || subject == "" {
		return "", "", gwerrors.ErrMissingSubject
	}

	// A missing display name is not an error; downstream rendering
	// treats the user as anonymous.
	userName, _ = claims["preferred_username"].(string)

	return subject, userName, nil
}
