package providers

import (
	"github.com/samber/do/v2"

	"github.com/sutapaslibrary/library-server/internal/auth"
	"github.com/sutapaslibrary/library-server/internal/config"
	"github.com/sutapaslibrary/library-server/internal/logger"
)

// AuthKey is the hex encoded PASETO key.
type AuthKey string

// ProvideAuthKey uses the configured key or loads/generates one under the
// data path.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.TokenKey != "" {
		log.Info("Session key loaded from configuration")
		return AuthKey(cfg.Auth.TokenKey), nil
	}

	key, err := auth.LoadOrGenerateKey(cfg.Storage.DataPath)
	if err != nil {
		return "", err
	}
	cfg.Auth.TokenKey = key

	log.Info("Session key loaded", "token_duration", cfg.Auth.TokenDuration)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(key), cfg.Auth.TokenDuration)
}

// ProvideIdentityProvider provides the sign-in and role resolution provider.
func ProvideIdentityProvider(i do.Injector) (*auth.Provider, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tokens := do.MustInvoke[*auth.TokenService](i)

	return auth.NewProvider(tokens, cfg.Auth.AdminEmail), nil
}
