package gateways

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StripeGateway adapts the internal contract to Stripe. Until a live SDK
// integration lands it runs in mock mode: charges succeed immediately and
// transactions are remembered in-process for status/refund lookups.
type StripeGateway struct {
	mu           sync.Mutex
	transactions map[string]string // transaction id -> status
}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{transactions: make(map[string]string)}
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) ProcessPayment(ctx context.Context, req ChargeRequest) (ChargeResponse, error) {
	if req.Amount <= 0 {
		return ChargeResponse{
			Success:      false,
			Status:       "failed",
			ErrorMessage: "amount must be positive",
		}, ErrPaymentDeclined
	}

	txnID := "ch_" + uuid.NewString()
	g.mu.Lock()
	g.transactions[txnID] = "completed"
	g.mu.Unlock()

	log.Debug().Str("component", "gateway").Str("provider", "stripe").
		Str("transaction_id", txnID).Float64("amount", req.Amount).
		Msg("mock charge approved")

	return ChargeResponse{
		Success:       true,
		TransactionID: txnID,
		Status:        "completed",
		ReceiptURL:    fmt.Sprintf("https://pay.stripe.test/receipts/%s", txnID),
	}, nil
}

func (g *StripeGateway) CreatePaymentMethod(ctx context.Context, kind, last4 string) (PaymentMethod, error) {
	return PaymentMethod{
		ID:       "pm_" + uuid.NewString(),
		Type:     kind,
		Last4:    last4,
		Provider: g.Name(),
	}, nil
}

func (g *StripeGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (ChargeResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.transactions[transactionID]; !ok {
		return ChargeResponse{Success: false, Status: "failed", ErrorMessage: "no such transaction"}, ErrUnknownTransaction
	}
	g.transactions[transactionID] = "refunded"
	return ChargeResponse{
		Success:       true,
		TransactionID: transactionID,
		Status:        "refunded",
	}, nil
}

func (g *StripeGateway) GetPaymentStatus(ctx context.Context, transactionID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	status, ok := g.transactions[transactionID]
	if !ok {
		return "", ErrUnknownTransaction
	}
	return status, nil
}
