package billing

import (
	"errors"
	"fmt"
)

// Bid statuses.
const (
	BidDraft     = "draft"
	BidSent      = "sent"
	BidViewed    = "viewed"
	BidAccepted  = "accepted"
	BidRejected  = "rejected"
	BidExpired   = "expired"
	BidCancelled = "cancelled"
)

// Invoice statuses.
const (
	InvoiceDraft     = "draft"
	InvoiceSent      = "sent"
	InvoiceViewed    = "viewed"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// bidTransitions lists every legal bid move. Accepted/rejected/expired/
// cancelled are terminal.
var bidTransitions = map[string][]string{
	BidDraft:  {BidSent, BidCancelled},
	BidSent:   {BidViewed, BidAccepted, BidRejected, BidExpired, BidCancelled},
	BidViewed: {BidAccepted, BidRejected, BidExpired, BidCancelled},
}

// invoiceTransitions lists every legal invoice move. Paid is derived from
// recorded payments, never set by hand; overdue comes from the sweep and can
// still be paid or cancelled.
var invoiceTransitions = map[string][]string{
	InvoiceDraft:   {InvoiceSent, InvoiceCancelled},
	InvoiceSent:    {InvoiceViewed, InvoicePaid, InvoiceOverdue, InvoiceCancelled},
	InvoiceViewed:  {InvoicePaid, InvoiceOverdue, InvoiceCancelled},
	InvoiceOverdue: {InvoicePaid, InvoiceCancelled},
}

func canMove(table map[string][]string, from, to string) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// BidTransition validates a bid status change.
func BidTransition(from, to string) error {
	if !canMove(bidTransitions, from, to) {
		return fmt.Errorf("%w: bid %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// InvoiceTransition validates an invoice status change.
func InvoiceTransition(from, to string) error {
	if !canMove(invoiceTransitions, from, to) {
		return fmt.Errorf("%w: invoice %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// BidOpen reports whether a bid can still be accepted or rejected.
func BidOpen(status string) bool {
	return status == BidSent || status == BidViewed
}

// InvoiceOutstanding reports whether an invoice still awaits payment.
func InvoiceOutstanding(status string) bool {
	return status == InvoiceSent || status == InvoiceViewed || status == InvoiceOverdue
}

// Editable reports whether a document's line items may still change.
// Both document types lock once they leave draft.
func Editable(status string) bool {
	return status == BidDraft // == InvoiceDraft
}
