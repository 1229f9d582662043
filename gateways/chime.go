package gateways

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ChimeGateway mock adapter. Chime has no receipt URLs.
type ChimeGateway struct {
	mu           sync.Mutex
	transactions map[string]string
}

func NewChimeGateway() *ChimeGateway {
	return &ChimeGateway{transactions: make(map[string]string)}
}

func (g *ChimeGateway) Name() string { return "chime" }

func (g *ChimeGateway) ProcessPayment(ctx context.Context, req ChargeRequest) (ChargeResponse, error) {
	if req.Amount <= 0 {
		return ChargeResponse{Success: false, Status: "failed", ErrorMessage: "amount must be positive"}, ErrPaymentDeclined
	}

	txnID := "chime_" + uuid.NewString()
	g.mu.Lock()
	g.transactions[txnID] = "completed"
	g.mu.Unlock()

	return ChargeResponse{
		Success:       true,
		TransactionID: txnID,
		Status:        "completed",
	}, nil
}

func (g *ChimeGateway) CreatePaymentMethod(ctx context.Context, kind, last4 string) (PaymentMethod, error) {
	return PaymentMethod{
		ID:       "cpm_" + uuid.NewString(),
		Type:     kind,
		Last4:    last4,
		Provider: g.Name(),
	}, nil
}

func (g *ChimeGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (ChargeResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.transactions[transactionID]; !ok {
		return ChargeResponse{Success: false, Status: "failed", ErrorMessage: "no such transaction"}, ErrUnknownTransaction
	}
	g.transactions[transactionID] = "refunded"
	return ChargeResponse{Success: true, TransactionID: transactionID, Status: "refunded"}, nil
}

func (g *ChimeGateway) GetPaymentStatus(ctx context.Context, transactionID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	status, ok := g.transactions[transactionID]
	if !ok {
		return "", ErrUnknownTransaction
	}
	return status, nil
}
