package providers

import (
	"github.com/samber/do/v2"

	"github.com/sutapaslibrary/library-server/internal/config"
	"github.com/sutapaslibrary/library-server/internal/logger"
	"github.com/sutapaslibrary/library-server/internal/metrics"
	"github.com/sutapaslibrary/library-server/internal/pricing"
	"github.com/sutapaslibrary/library-server/internal/service"
	"github.com/sutapaslibrary/library-server/internal/store"
	"github.com/sutapaslibrary/library-server/internal/validation"
)

// ProvideMetrics provides the Prometheus metrics registry.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}

// ProvideFormatter provides the currency formatter.
func ProvideFormatter(i do.Injector) (*pricing.Formatter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return pricing.NewFormatter(cfg.Currency.Code, cfg.Currency.Locale)
}

// ProvideReviewService provides the review service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	st := do.MustInvoke[*store.Store](i)
	validator := do.MustInvoke[*validation.Validator](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReviewService(st, validator, m, log.Logger), nil
}

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	st := do.MustInvoke[*store.Store](i)
	reviews := do.MustInvoke[*service.ReviewService](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(st, reviews, searchService, validator, m, log.Logger), nil
}

// ProvideCartService provides the cart service.
func ProvideCartService(i do.Injector) (*service.CartService, error) {
	st := do.MustInvoke[*store.Store](i)
	formatter := do.MustInvoke[*pricing.Formatter](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCartService(st, formatter, m, log.Logger), nil
}

// ProvideCheckoutService provides the simulated checkout.
func ProvideCheckoutService(i do.Injector) (*service.CheckoutService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	st := do.MustInvoke[*store.Store](i)
	validator := do.MustInvoke[*validation.Validator](i)
	formatter := do.MustInvoke[*pricing.Formatter](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCheckoutService(st, validator, formatter, m, cfg.Checkout.Delay, log.Logger), nil
}

// ProvideLibraryService provides the library and dashboard service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	st := do.MustInvoke[*store.Store](i)
	formatter := do.MustInvoke[*pricing.Formatter](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(st, formatter, log.Logger), nil
}

// ProvideReaderService provides the chapter reader.
func ProvideReaderService(i do.Injector) (*service.ReaderService, error) {
	return service.NewReaderService(do.MustInvoke[*store.Store](i)), nil
}
