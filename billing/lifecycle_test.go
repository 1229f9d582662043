package billing

import (
	"errors"
	"testing"
)

func TestBidTransition(t *testing.T) {
	legal := [][2]string{
		{BidDraft, BidSent},
		{BidDraft, BidCancelled},
		{BidSent, BidViewed},
		{BidSent, BidAccepted},
		{BidSent, BidRejected},
		{BidSent, BidExpired},
		{BidViewed, BidAccepted},
		{BidViewed, BidRejected},
		{BidViewed, BidCancelled},
	}
	for _, tc := range legal {
		if err := BidTransition(tc[0], tc[1]); err != nil {
			t.Errorf("BidTransition(%s, %s) = %v, want nil", tc[0], tc[1], err)
		}
	}

	illegal := [][2]string{
		{BidDraft, BidAccepted}, // can't accept an unsent bid
		{BidDraft, BidViewed},
		{BidAccepted, BidRejected}, // terminal
		{BidAccepted, BidCancelled},
		{BidRejected, BidSent},
		{BidExpired, BidAccepted},
		{BidCancelled, BidSent},
		{BidViewed, BidSent}, // one-way
	}
	for _, tc := range illegal {
		if err := BidTransition(tc[0], tc[1]); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("BidTransition(%s, %s) = %v, want ErrInvalidTransition", tc[0], tc[1], err)
		}
	}
}

func TestInvoiceTransition(t *testing.T) {
	legal := [][2]string{
		{InvoiceDraft, InvoiceSent},
		{InvoiceDraft, InvoiceCancelled},
		{InvoiceSent, InvoiceViewed},
		{InvoiceSent, InvoicePaid},
		{InvoiceSent, InvoiceOverdue},
		{InvoiceViewed, InvoicePaid},
		{InvoiceViewed, InvoiceOverdue},
		{InvoiceOverdue, InvoicePaid}, // late payment still settles
		{InvoiceOverdue, InvoiceCancelled},
	}
	for _, tc := range legal {
		if err := InvoiceTransition(tc[0], tc[1]); err != nil {
			t.Errorf("InvoiceTransition(%s, %s) = %v, want nil", tc[0], tc[1], err)
		}
	}

	illegal := [][2]string{
		{InvoiceDraft, InvoicePaid}, // paid is derived, never from draft
		{InvoiceDraft, InvoiceViewed},
		{InvoicePaid, InvoiceCancelled}, // paid is terminal
		{InvoicePaid, InvoiceOverdue},
		{InvoiceCancelled, InvoiceSent},
		{InvoiceViewed, InvoiceSent}, // one-way
	}
	for _, tc := range illegal {
		if err := InvoiceTransition(tc[0], tc[1]); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("InvoiceTransition(%s, %s) = %v, want ErrInvalidTransition", tc[0], tc[1], err)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	if !BidOpen(BidSent) || !BidOpen(BidViewed) {
		t.Error("sent/viewed bids should be open")
	}
	if BidOpen(BidDraft) || BidOpen(BidAccepted) {
		t.Error("draft/accepted bids should not be open")
	}
	if !InvoiceOutstanding(InvoiceOverdue) {
		t.Error("overdue invoices are still outstanding")
	}
	if InvoiceOutstanding(InvoicePaid) || InvoiceOutstanding(InvoiceDraft) {
		t.Error("paid/draft invoices are not outstanding")
	}
	if !Editable(BidDraft) || Editable(BidSent) {
		t.Error("only draft documents are editable")
	}
}
