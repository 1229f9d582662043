package gateways

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrUnknownProvider    = errors.New("unknown payment provider")
	ErrPaymentDeclined    = errors.New("payment declined by gateway")
	ErrUnknownTransaction = errors.New("unknown transaction id")
)

// ChargeRequest is what the payment recorder hands to a provider.
type ChargeRequest struct {
	Amount          float64
	Currency        string
	InvoiceNumber   string
	Method          string // card | echeck
	CustomerEmail   string
	PaymentMethodID string // provider token from CreatePaymentMethod
}

// ChargeResponse is the internal contract every provider adapter must
// satisfy. Real SDK integrations replace the adapter internals but keep
// this shape.
type ChargeResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"` // pending | completed | failed | refunded
	ErrorMessage  string `json:"error_message,omitempty"`
	ReceiptURL    string `json:"receipt_url,omitempty"`
}

// PaymentMethod is a stored, tokenized payment instrument.
type PaymentMethod struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // card | echeck
	Last4    string `json:"last4"`
	Provider string `json:"provider"`
}

// Gateway abstracts an external payment provider (Stripe, PayPal, Chime).
type Gateway interface {
	Name() string
	ProcessPayment(ctx context.Context, req ChargeRequest) (ChargeResponse, error)
	CreatePaymentMethod(ctx context.Context, kind, last4 string) (PaymentMethod, error)
	RefundPayment(ctx context.Context, transactionID string, amount float64) (ChargeResponse, error)
	GetPaymentStatus(ctx context.Context, transactionID string) (string, error)
}

// Registry selects a provider by name.
type Registry struct {
	providers map[string]Gateway
}

func NewRegistry(gws ...Gateway) *Registry {
	r := &Registry{providers: make(map[string]Gateway, len(gws))}
	for _, g := range gws {
		r.providers[g.Name()] = g
	}
	return r
}

var defaultRegistry = NewRegistry(NewStripeGateway(), NewPayPalGateway(), NewChimeGateway())

// Default returns the shared standard provider set. Callers (the payment
// recorder, the pending-payment reconciler) must see the same adapter
// instances so transactions recorded by one are visible to the other.
func Default() *Registry {
	return defaultRegistry
}

func (r *Registry) Get(name string) (Gateway, error) {
	g, ok := r.providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return g, nil
}
