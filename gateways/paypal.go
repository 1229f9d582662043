package gateways

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PayPalGateway mock adapter. Echeck charges clear asynchronously at PayPal,
// so those come back "pending" instead of "completed".
type PayPalGateway struct {
	mu           sync.Mutex
	transactions map[string]string
}

func NewPayPalGateway() *PayPalGateway {
	return &PayPalGateway{transactions: make(map[string]string)}
}

func (g *PayPalGateway) Name() string { return "paypal" }

func (g *PayPalGateway) ProcessPayment(ctx context.Context, req ChargeRequest) (ChargeResponse, error) {
	if req.Amount <= 0 {
		return ChargeResponse{Success: false, Status: "failed", ErrorMessage: "amount must be positive"}, ErrPaymentDeclined
	}

	status := "completed"
	if req.Method == "echeck" {
		status = "pending"
	}

	txnID := "PAYID-" + uuid.NewString()
	g.mu.Lock()
	g.transactions[txnID] = status
	g.mu.Unlock()

	log.Debug().Str("component", "gateway").Str("provider", "paypal").
		Str("transaction_id", txnID).Str("status", status).
		Msg("mock charge accepted")

	return ChargeResponse{
		Success:       true,
		TransactionID: txnID,
		Status:        status,
		ReceiptURL:    fmt.Sprintf("https://paypal.test/activity/%s", txnID),
	}, nil
}

func (g *PayPalGateway) CreatePaymentMethod(ctx context.Context, kind, last4 string) (PaymentMethod, error) {
	return PaymentMethod{
		ID:       "BA-" + uuid.NewString(),
		Type:     kind,
		Last4:    last4,
		Provider: g.Name(),
	}, nil
}

func (g *PayPalGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (ChargeResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.transactions[transactionID]; !ok {
		return ChargeResponse{Success: false, Status: "failed", ErrorMessage: "no such transaction"}, ErrUnknownTransaction
	}
	g.transactions[transactionID] = "refunded"
	return ChargeResponse{Success: true, TransactionID: transactionID, Status: "refunded"}, nil
}

func (g *PayPalGateway) GetPaymentStatus(ctx context.Context, transactionID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	status, ok := g.transactions[transactionID]
	if !ok {
		return "", ErrUnknownTransaction
	}
	// Mock mode: a pending echeck has cleared by the next status poll.
	if status == "pending" {
		status = "completed"
		g.transactions[transactionID] = status
	}
	return status, nil
}
