package config

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetAuthorizeURL() string
	GetTokenURL() string
	GetScopes() []string
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetClientID() string {
	return GetEnv("OAUTH_CLIENT_ID", "")
}

func (OAuth) GetClientSecret() string {
	return GetEnv("OAUTH_CLIENT_SECRET", "")
}

func (OAuth) GetRedirectURI() string {
	return GetEnv("OAUTH_REDIRECT_URI", "http://localhost:8080/oidc")
}

func (OAuth) GetAuthorizeURL() string {
	return GetEnv("OAUTH_AUTHORIZE_URL", "https://sso.chaster.app/auth/realms/app/protocol/openid-connect/auth")
}

func (OAuth) GetTokenURL() string {
	return GetEnv("OAUTH_TOKEN_URL", "https://sso.chaster.app/auth/realms/app/protocol/openid-connect/token")
}

func (OAuth) GetScopes() []string {
	return []string{"locks"}
}
