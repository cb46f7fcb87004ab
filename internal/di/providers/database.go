package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/sutapaslibrary/library-server/internal/config"
	"github.com/sutapaslibrary/library-server/internal/kv"
	"github.com/sutapaslibrary/library-server/internal/logger"
	"github.com/sutapaslibrary/library-server/internal/sse"
	"github.com/sutapaslibrary/library-server/internal/store"
	"github.com/sutapaslibrary/library-server/internal/validation"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StorageHandle wraps the key-value storage with shutdown capability.
type StorageHandle struct {
	kv.Storage
}

// Shutdown implements do.Shutdownable.
func (h *StorageHandle) Shutdown() error {
	return h.Close()
}

// ProvideStorage opens the configured key-value backend.
func ProvideStorage(i do.Injector) (*StorageHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := kv.Open(cfg.Storage.Driver, cfg.Storage.Path(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Storage initialized", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path())

	return &StorageHandle{Storage: storage}, nil
}

// ProvideValidator provides the shared struct validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideStore provides the catalog, content, cart and ledger stores.
func ProvideStore(i do.Injector) (*store.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storage := do.MustInvoke[*StorageHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)

	scope, err := store.ParseCartScope(cfg.Cart.Scope)
	if err != nil {
		return nil, err
	}

	return store.New(storage.Storage, store.Options{
		Logger:    log.Logger,
		Emitter:   sseHandle.Manager,
		Validator: validator,
		CartScope: scope,
	}), nil
}
