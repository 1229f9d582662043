package gateways

import (
	"context"
	"errors"
	"testing"
)

func TestRegistry(t *testing.T) {
	r := Default()

	t.Run("known providers", func(t *testing.T) {
		for _, name := range []string{"stripe", "paypal", "chime", " Stripe "} {
			if _, err := r.Get(name); err != nil {
				t.Errorf("Get(%q) = %v, want nil", name, err)
			}
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := r.Get("square"); !errors.Is(err, ErrUnknownProvider) {
			t.Fatalf("expected ErrUnknownProvider, got %v", err)
		}
	})
}

func TestProcessPayment(t *testing.T) {
	ctx := context.Background()
	req := ChargeRequest{Amount: 1100.00, Currency: "USD", InvoiceNumber: "INV-1001", Method: "card"}

	for _, g := range []Gateway{NewStripeGateway(), NewPayPalGateway(), NewChimeGateway()} {
		t.Run(g.Name(), func(t *testing.T) {
			resp, err := g.ProcessPayment(ctx, req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !resp.Success || resp.TransactionID == "" {
				t.Fatalf("bad response: %+v", resp)
			}
			if resp.Status != "completed" {
				t.Fatalf("status = %s, want completed", resp.Status)
			}

			status, err := g.GetPaymentStatus(ctx, resp.TransactionID)
			if err != nil || status != "completed" {
				t.Fatalf("GetPaymentStatus = %s, %v", status, err)
			}
		})
	}

	t.Run("non-positive amount declined", func(t *testing.T) {
		resp, err := NewStripeGateway().ProcessPayment(ctx, ChargeRequest{Amount: 0})
		if !errors.Is(err, ErrPaymentDeclined) {
			t.Fatalf("expected ErrPaymentDeclined, got %v", err)
		}
		if resp.Success || resp.Status != "failed" || resp.ErrorMessage == "" {
			t.Fatalf("bad failure shape: %+v", resp)
		}
	})

	t.Run("paypal echeck comes back pending then clears on poll", func(t *testing.T) {
		g := NewPayPalGateway()
		resp, err := g.ProcessPayment(ctx, ChargeRequest{Amount: 50, Method: "echeck"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Status != "pending" {
			t.Fatalf("status = %s, want pending", resp.Status)
		}

		status, err := g.GetPaymentStatus(ctx, resp.TransactionID)
		if err != nil || status != "completed" {
			t.Fatalf("poll after clearing = %s, %v; want completed", status, err)
		}
	})
}

func TestRefundPayment(t *testing.T) {
	ctx := context.Background()
	g := NewStripeGateway()

	resp, err := g.ProcessPayment(ctx, ChargeRequest{Amount: 75, Method: "card"})
	if err != nil {
		t.Fatalf("charge failed: %v", err)
	}

	refund, err := g.RefundPayment(ctx, resp.TransactionID, 75)
	if err != nil || !refund.Success || refund.Status != "refunded" {
		t.Fatalf("refund = %+v, %v", refund, err)
	}

	status, err := g.GetPaymentStatus(ctx, resp.TransactionID)
	if err != nil || status != "refunded" {
		t.Fatalf("status after refund = %s, %v", status, err)
	}

	if _, err := g.RefundPayment(ctx, "ch_missing", 10); !errors.Is(err, ErrUnknownTransaction) {
		t.Fatalf("expected ErrUnknownTransaction, got %v", err)
	}
}

func TestCreatePaymentMethod(t *testing.T) {
	pm, err := NewPayPalGateway().CreatePaymentMethod(context.Background(), "card", "4242")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pm.ID == "" || pm.Provider != "paypal" || pm.Last4 != "4242" {
		t.Fatalf("bad payment method: %+v", pm)
	}
}
