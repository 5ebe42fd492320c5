package config

type Config interface {
	EnvConfig
	OAuthConfig
	SessionConfig
}

type mainConfig struct {
	EnvVars
	OAuth
	Session
}

func New() Config {
	return mainConfig{}
}
