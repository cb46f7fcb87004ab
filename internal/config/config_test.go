package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development"},
		Logger:   LoggerConfig{Level: "info"},
		Storage:  StorageConfig{Driver: "badger", DataPath: "/some/path"},
		Auth:     AuthConfig{AdminEmail: "admin@example.com"},
		Cart:     CartConfig{Scope: "global"},
		Checkout: CheckoutConfig{Delay: 2 * time.Second},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Logger.Level = "trace" }},
		{"bad driver", func(c *Config) { c.Storage.Driver = "redis" }},
		{"empty data path", func(c *Config) { c.Storage.DataPath = "" }},
		{"bad cart scope", func(c *Config) { c.Cart.Scope = "tab" }},
		{"empty admin", func(c *Config) { c.Auth.AdminEmail = "" }},
		{"negative delay", func(c *Config) { c.Checkout.Delay = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestStorageConfig_Path(t *testing.T) {
	assert.Equal(t, filepath.Join("/d", "badger"), StorageConfig{Driver: "badger", DataPath: "/d"}.Path())
	assert.Equal(t, filepath.Join("/d", "library.db"), StorageConfig{Driver: "sqlite", DataPath: "/d"}.Path())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())

	cfg, err := Load([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "badger", cfg.Storage.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "sutapajana353@gmail.com", cfg.Auth.AdminEmail)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 2*time.Second, cfg.Checkout.Delay)
	assert.Equal(t, "global", cfg.Cart.Scope)
	assert.Equal(t, "INR", cfg.Currency.Code)
}

func TestLoad_FlagBeatsEnvBeatsDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"# storefront\nSERVER_PORT=7000\nCART_SCOPE=user\nCHECKOUT_DELAY=\"500ms\"\n"), 0o600))

	t.Setenv("DATA_PATH", dir)
	t.Setenv("SERVER_PORT", "9000")
	// godotenv only fills variables absent from the environment. Register
	// restoration, then unset.
	for _, key := range []string{"CART_SCOPE", "CHECKOUT_DELAY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load([]string{"-env-file", envFile, "-port", "9999"})
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port, "flag wins")
	assert.Equal(t, "user", cfg.Cart.Scope, ".env fills unset vars")
	assert.Equal(t, 500*time.Millisecond, cfg.Checkout.Delay)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())

	_, err := Load([]string{"-env-file", "", "-checkout-delay", "soon"})
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/library", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "library"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("relative/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "TEST_CONFIG_UNSET_KEY", "default"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a, ,http://b "))
	assert.Nil(t, splitList(""))
}
