package config_test

import (
	"testing"

	"github.com/jrsteele09/go-login-gateway/internal/config"
	"github.com/stretchr/testify/require"
)

func TestGetPortDefaultsWhenUnset(t *testing.T) {
	t.Setenv("PORT", "")
	require.Equal(t, ":8080", config.EnvVars{}.GetPort())
}

func TestGetPortPrefixesColon(t *testing.T) {
	t.Setenv("PORT", "9090")
	require.Equal(t, ":9090", config.EnvVars{}.GetPort())
}

func TestGetPortKeepsExistingColon(t *testing.T) {
	t.Setenv("PORT", ":9090")
	require.Equal(t, ":9090", config.EnvVars{}.GetPort())
}
