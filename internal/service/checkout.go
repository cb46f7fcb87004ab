package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/id"
	"github.com/sutapaslibrary/library-server/internal/metrics"
	"github.com/sutapaslibrary/library-server/internal/pricing"
	"github.com/sutapaslibrary/library-server/internal/store"
	"github.com/sutapaslibrary/library-server/internal/validation"
)

// DefaultCheckoutDelay is how long simulated payment processing takes.
const DefaultCheckoutDelay = 2 * time.Second

// PaymentForm is the simulated card and billing form. None of it is stored.
type PaymentForm struct {
	CardName   string `json:"cardName" validate:"notblank"`
	CardNumber string `json:"cardNumber" validate:"len=16,numeric"`
	ExpiryDate string `json:"expiryDate" validate:"expiry"`
	CVV        string `json:"cvv" validate:"len=3,numeric"`
	Address    string `json:"address" validate:"notblank"`
	City       string `json:"city" validate:"notblank"`
	ZipCode    string `json:"zipCode" validate:"notblank"`
}

// Normalize applies the same clean-up the checkout form does while typing:
// spaces are dropped from the card number, the expiry is rebuilt as MM/YY
// from its digits and the CVV keeps at most three digits.
func (f PaymentForm) Normalize() PaymentForm {
	f.CardName = strings.TrimSpace(f.CardName)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.ZipCode = strings.TrimSpace(f.ZipCode)
	f.CardNumber = strings.Join(strings.Fields(f.CardNumber), "")

	expiry := digitsOnly(f.ExpiryDate)
	if len(expiry) > 2 {
		expiry = expiry[:2] + "/" + expiry[2:]
	}
	f.ExpiryDate = truncate(expiry, 5)

	f.CVV = truncate(digitsOnly(f.CVV), 3)
	return f
}

// Receipt confirms a completed checkout.
type Receipt struct {
	OrderID        string                  `json:"orderId"`
	Email          string                  `json:"email"`
	Items          []domain.Book           `json:"items"`
	Recorded       []domain.PurchaseRecord `json:"recorded"`
	Total          float64                 `json:"total"`
	FormattedTotal string                  `json:"formattedTotal"`
	PurchasedAt    time.Time               `json:"purchasedAt"`
}

// CheckoutService runs the simulated payment and moves the cart into the
// reader's purchase ledger.
type CheckoutService struct {
	store     *store.Store
	validator *validation.Validator
	formatter *pricing.Formatter
	metrics   *metrics.Metrics
	logger    *slog.Logger
	delay     time.Duration
	sleep     func(time.Duration)
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(store *store.Store, validator *validation.Validator, formatter *pricing.Formatter, m *metrics.Metrics, delay time.Duration, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		store:     store,
		validator: validator,
		formatter: formatter,
		metrics:   m,
		logger:    logger,
		delay:     delay,
		sleep:     time.Sleep,
	}
}

// Checkout validates the payment form, waits out the simulated processing
// delay and records every cart book as purchased before clearing the cart.
// Once the delay starts the checkout always commits, even if ctx is
// cancelled.
func (s *CheckoutService) Checkout(ctx context.Context, ident *domain.Identity, form PaymentForm) (*Receipt, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}

	form = form.Normalize()
	if err := s.validator.Validate(form); err != nil {
		return nil, err
	}

	items, err := s.store.Cart.List(ctx, ident.Email)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	orderID, err := id.Generate(id.PrefixOrder)
	if err != nil {
		return nil, err
	}

	s.logger.Info("processing checkout", "order_id", orderID, "email", ident.Email, "items", len(items))
	if s.delay > 0 {
		s.sleep(s.delay)
	}

	ctx = context.WithoutCancel(ctx)

	recorded, err := s.store.Ledger.RecordPurchase(ctx, ident.Email, items)
	if err != nil {
		return nil, fmt.Errorf("record purchase: %w", err)
	}
	if err := s.store.Cart.Clear(ctx, ident.Email); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	total := pricing.Total(items)
	s.metrics.CheckoutCompleted(total)
	s.metrics.CartChanged("checkout")
	s.logger.Info("checkout completed",
		"order_id", orderID,
		"email", ident.Email,
		"recorded", len(recorded),
		"total", total,
	)

	purchasedAt := time.Now().UTC()
	if len(recorded) > 0 {
		purchasedAt = recorded[0].PurchaseDate
	} else {
		recorded = []domain.PurchaseRecord{}
	}

	return &Receipt{
		OrderID:        orderID,
		Email:          ident.Email,
		Items:          items,
		Recorded:       recorded,
		Total:          total,
		FormattedTotal: s.formatter.Format(total),
		PurchasedAt:    purchasedAt,
	}, nil
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
