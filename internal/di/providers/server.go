package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/sutapaslibrary/library-server/internal/api"
	"github.com/sutapaslibrary/library-server/internal/auth"
	"github.com/sutapaslibrary/library-server/internal/config"
	"github.com/sutapaslibrary/library-server/internal/logger"
	"github.com/sutapaslibrary/library-server/internal/metrics"
	"github.com/sutapaslibrary/library-server/internal/service"
	"github.com/sutapaslibrary/library-server/internal/store"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer h.handler.Close()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	st := do.MustInvoke[*store.Store](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	provider := do.MustInvoke[*auth.Provider](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Catalog:  do.MustInvoke[*service.CatalogService](i),
		Reviews:  do.MustInvoke[*service.ReviewService](i),
		Cart:     do.MustInvoke[*service.CartService](i),
		Checkout: do.MustInvoke[*service.CheckoutService](i),
		Library:  do.MustInvoke[*service.LibraryService](i),
		Reader:   do.MustInvoke[*service.ReaderService](i),
		Search:   do.MustInvoke[*service.SearchService](i),
	}

	m.RegisterGaugeFunc("sse_clients", "Connected cart stream clients.", func() float64 {
		return float64(sseHandle.ClientCount())
	})

	handler := api.NewServer(st, services, provider, sseHandle.Manager, m, api.Options{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
