// Package pricing totals book prices and formats amounts in the configured
// currency.
package pricing

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sutapaslibrary/library-server/internal/domain"
)

// DefaultCurrency is the storefront's currency unless configured otherwise.
const DefaultCurrency = "INR"

// Formatter renders amounts as localized currency strings.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter creates a formatter for an ISO 4217 code and a BCP 47
// language tag. An empty locale uses English.
func NewFormatter(code, locale string) (*Formatter, error) {
	if code == "" {
		code = DefaultCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	tag := language.English
	if locale != "" {
		tag, err = language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
	}

	return &Formatter{unit: unit, printer: message.NewPrinter(tag)}, nil
}

// Currency returns the ISO code.
func (f *Formatter) Currency() string {
	return f.unit.String()
}

// Format renders amount with the currency symbol and two decimals,
// e.g. "₹1,234.50".
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprintf("%v%v",
		currency.NarrowSymbol(f.unit),
		number.Decimal(Round(amount), number.Scale(2)))
}

// Round rounds to whole cents.
func Round(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Total sums book prices, rounded to cents.
func Total(books []domain.Book) float64 {
	var cents int64
	for _, b := range books {
		cents += int64(math.Round(b.Price * 100))
	}
	return float64(cents) / 100
}

// TotalPurchases sums the prices of purchase records, rounded to cents.
func TotalPurchases(records []domain.PurchaseRecord) float64 {
	var cents int64
	for _, r := range records {
		cents += int64(math.Round(r.Price * 100))
	}
	return float64(cents) / 100
}
