package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sutapaslibrary/library-server/internal/service"
)

func (s *Server) registerCheckoutRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "checkout",
		Method:      http.MethodPost,
		Path:        "/api/v1/checkout",
		Summary:     "Checkout",
		Description: "Simulates card payment, then moves every cart book into the reader's library",
		Tags:        []string{"Checkout"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: huma.Middlewares{s.rateLimit(s.checkoutLimiter)},
	}, s.handleCheckout)
}

// CheckoutRequest is the simulated payment form. Card and billing details
// are checked for shape only and never stored.
type CheckoutRequest struct {
	CardName   string `json:"cardName,omitempty" doc:"Name on card"`
	CardNumber string `json:"cardNumber,omitempty" doc:"16-digit card number, spaces allowed"`
	ExpiryDate string `json:"expiryDate,omitempty" doc:"Expiry as MM/YY"`
	CVV        string `json:"cvv,omitempty" doc:"3-digit security code"`
	Address    string `json:"address,omitempty" doc:"Billing street address"`
	City       string `json:"city,omitempty" doc:"Billing city"`
	ZipCode    string `json:"zipCode,omitempty" doc:"Billing postal code"`
}

// CheckoutInput wraps the checkout request for Huma.
type CheckoutInput struct {
	Body CheckoutRequest
}

// ReceiptOutput wraps the receipt for Huma.
type ReceiptOutput struct {
	Body *service.Receipt
}

func (s *Server) handleCheckout(ctx context.Context, input *CheckoutInput) (*ReceiptOutput, error) {
	receipt, err := s.services.Checkout.Checkout(ctx, IdentityFrom(ctx), service.PaymentForm{
		CardName:   input.Body.CardName,
		CardNumber: input.Body.CardNumber,
		ExpiryDate: input.Body.ExpiryDate,
		CVV:        input.Body.CVV,
		Address:    input.Body.Address,
		City:       input.Body.City,
		ZipCode:    input.Body.ZipCode,
	})
	if err != nil {
		return nil, s.mapError(ctx, "checkout", err)
	}
	return &ReceiptOutput{Body: receipt}, nil
}
