package billing

import (
	"errors"
	"testing"
	"time"
)

func TestApplyPayment(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("covering payment marks invoice paid", func(t *testing.T) {
		// $1000 subtotal + 10% tax, paid in full with one card payment
		res, err := ApplyPayment(InvoiceSent, 1100.00, 0, 0, 1100.00, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Paid {
			t.Fatal("expected invoice to be paid")
		}
		if res.PaidAt == nil || !res.PaidAt.Equal(now) {
			t.Fatalf("paidAt = %v, want %v", res.PaidAt, now)
		}
		if res.PaidTotal != 1100.00 {
			t.Fatalf("paidTotal = %v, want 1100.00", res.PaidTotal)
		}
	})

	t.Run("partial payment leaves status alone", func(t *testing.T) {
		res, err := ApplyPayment(InvoiceSent, 1100.00, 0, 0, 500.00, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Paid || res.PaidAt != nil {
			t.Fatalf("partial payment must not mark paid: %+v", res)
		}
		if res.PaidTotal != 500.00 {
			t.Fatalf("paidTotal = %v, want 500.00", res.PaidTotal)
		}
	})

	t.Run("second payment completes the balance", func(t *testing.T) {
		res, err := ApplyPayment(InvoiceViewed, 1100.00, 500.00, 0, 600.00, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Paid || res.PaidTotal != 1100.00 {
			t.Fatalf("expected paid at 1100.00, got %+v", res)
		}
	})

	t.Run("overdue invoice can still settle", func(t *testing.T) {
		res, err := ApplyPayment(InvoiceOverdue, 250.00, 0, 0, 250.00, now)
		if err != nil || !res.Paid {
			t.Fatalf("late payment should settle: res=%+v err=%v", res, err)
		}
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		_, err := ApplyPayment(InvoiceSent, 1100.00, 1000.00, 0, 200.00, now)
		if !errors.Is(err, ErrOverpayment) {
			t.Fatalf("expected ErrOverpayment, got %v", err)
		}
	})

	t.Run("pending charges reserve the balance", func(t *testing.T) {
		// A clearing echeck already covers the invoice; a second charge of
		// any size must be rejected even though nothing has settled yet.
		_, err := ApplyPayment(InvoiceSent, 100.00, 0, 100.00, 10.00, now)
		if !errors.Is(err, ErrOverpayment) {
			t.Fatalf("expected ErrOverpayment with full pending reservation, got %v", err)
		}

		// Partial pending charge: only the remainder is still payable.
		res, err := ApplyPayment(InvoiceSent, 100.00, 0, 60.00, 40.00, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Paid {
			t.Fatal("pending money must not mark the invoice paid")
		}
		if res.PaidTotal != 40.00 {
			t.Fatalf("paidTotal = %v, want 40.00 (completed money only)", res.PaidTotal)
		}

		_, err = ApplyPayment(InvoiceSent, 100.00, 0, 60.00, 40.01, now)
		if !errors.Is(err, ErrOverpayment) {
			t.Fatalf("expected ErrOverpayment past the pending remainder, got %v", err)
		}
	})

	t.Run("zero and negative amounts rejected", func(t *testing.T) {
		for _, amount := range []float64{0, -5} {
			_, err := ApplyPayment(InvoiceSent, 100, 0, 0, amount, now)
			if !errors.Is(err, ErrNonPositiveAmount) {
				t.Fatalf("amount %v: expected ErrNonPositiveAmount, got %v", amount, err)
			}
		}
	})

	t.Run("draft and paid invoices not payable", func(t *testing.T) {
		for _, status := range []string{InvoiceDraft, InvoicePaid, InvoiceCancelled} {
			_, err := ApplyPayment(status, 100, 0, 0, 100, now)
			if !errors.Is(err, ErrInvoiceNotPayable) {
				t.Fatalf("status %s: expected ErrInvoiceNotPayable, got %v", status, err)
			}
		}
	})

	t.Run("cent amounts settle exactly", func(t *testing.T) {
		res, err := ApplyPayment(InvoiceSent, 107.53, 50.03, 0, 57.50, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Paid || res.PaidTotal != 107.53 {
			t.Fatalf("expected exact settle, got %+v", res)
		}
	})
}

func TestGatewayMethod(t *testing.T) {
	if !GatewayMethod(MethodCard) || !GatewayMethod(MethodECheck) {
		t.Error("card/echeck go through the gateway")
	}
	if GatewayMethod(MethodCash) || GatewayMethod(MethodBankTransfer) || GatewayMethod(MethodOther) {
		t.Error("manual methods bypass the gateway")
	}
}
