package billing

import (
	"errors"
	"time"

	"contractorhub-backend/utils"
)

// Payment methods.
const (
	MethodCard         = "card"
	MethodECheck       = "echeck"
	MethodBankTransfer = "bank_transfer"
	MethodCash         = "cash"
	MethodOther        = "other"
)

var (
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
	ErrOverpayment       = errors.New("payment exceeds outstanding balance")
	ErrInvoiceNotPayable = errors.New("invoice is not open for payment")
)

// GatewayMethod reports whether a payment method is processed through a
// payment gateway. Cash and bank transfers are recorded manually by the
// contractor and complete immediately.
func GatewayMethod(method string) bool {
	return method == MethodCard || method == MethodECheck
}

// PaymentResult describes the invoice-side effect of a completed payment.
type PaymentResult struct {
	PaidTotal float64
	Paid      bool // paidTotal now covers the invoice total
	PaidAt    *time.Time
}

// ApplyPayment validates a payment of amount against an invoice with the
// given total, prior payments and status, and derives the new rollup.
// completed is the sum of settled payments, pending the sum of gateway
// charges still clearing; both reserve balance, so a new payment only fits
// into what neither has claimed. Overpayment is rejected rather than
// tracked as credit. The rollup itself counts completed money only.
func ApplyPayment(status string, total, completed, pending, amount float64, at time.Time) (PaymentResult, error) {
	if amount <= 0 {
		return PaymentResult{}, ErrNonPositiveAmount
	}
	if !InvoiceOutstanding(status) {
		return PaymentResult{}, ErrInvoiceNotPayable
	}
	outstanding := utils.Round2(total - completed - pending)
	if amount > outstanding {
		return PaymentResult{}, ErrOverpayment
	}

	paidTotal := utils.Round2(completed + amount)
	res := PaymentResult{PaidTotal: paidTotal}
	if paidTotal >= total {
		res.Paid = true
		res.PaidAt = &at
	}
	return res, nil
}
