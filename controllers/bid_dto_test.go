package controllers

import (
	"testing"
	"time"

	"contractorhub-backend/middlewares"
)

func validLineItem() LineItemInput {
	return LineItemInput{
		Description: "Demolition and haul-away",
		Quantity:    4,
		UnitPrice:   150,
		Section:     "Site prep",
	}
}

func TestBidCreateDTOValidation(t *testing.T) {
	until := time.Now().Add(14 * 24 * time.Hour)

	t.Run("valid bid passes", func(t *testing.T) {
		in := BidCreateDTO{
			ProjectID:  1,
			Title:      "Kitchen remodel",
			ValidUntil: &until,
			Items:      []LineItemInput{validLineItem()},
		}
		if err := middlewares.ValidateStruct(in); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
	})

	t.Run("no line items rejected", func(t *testing.T) {
		in := BidCreateDTO{ProjectID: 1, Title: "Kitchen remodel"}
		if err := middlewares.ValidateStruct(in); err == nil {
			t.Fatal("expected validation error for missing line items")
		}
	})

	t.Run("empty line item slice rejected", func(t *testing.T) {
		in := BidCreateDTO{ProjectID: 1, Title: "Kitchen remodel", Items: []LineItemInput{}}
		if err := middlewares.ValidateStruct(in); err == nil {
			t.Fatal("expected validation error for empty line items")
		}
	})

	t.Run("missing title rejected", func(t *testing.T) {
		in := BidCreateDTO{ProjectID: 1, Items: []LineItemInput{validLineItem()}}
		if err := middlewares.ValidateStruct(in); err == nil {
			t.Fatal("expected validation error for missing title")
		}
	})

	t.Run("missing project rejected", func(t *testing.T) {
		in := BidCreateDTO{Title: "Kitchen remodel", Items: []LineItemInput{validLineItem()}}
		if err := middlewares.ValidateStruct(in); err == nil {
			t.Fatal("expected validation error for missing project id")
		}
	})
}

func TestLineItemInputValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*LineItemInput)
		wantErr bool
	}{
		{"valid", func(li *LineItemInput) {}, false},
		{"zero price allowed", func(li *LineItemInput) { li.UnitPrice = 0 }, false},
		{"no section allowed", func(li *LineItemInput) { li.Section = "" }, false},
		{"empty description", func(li *LineItemInput) { li.Description = "" }, true},
		{"zero quantity", func(li *LineItemInput) { li.Quantity = 0 }, true},
		{"negative quantity", func(li *LineItemInput) { li.Quantity = -2 }, true},
		{"negative price", func(li *LineItemInput) { li.UnitPrice = -0.01 }, true},
		{"malformed catalog ref", func(li *LineItemInput) {
			bad := "not-a-uuid"
			li.ItemID = &bad
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			li := validLineItem()
			tc.mutate(&li)
			err := middlewares.ValidateStruct(li)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
		})
	}
}

func TestPaymentCreateDTOValidation(t *testing.T) {
	valid := PaymentCreateDTO{Amount: 125.50, Method: "card", Provider: "stripe"}

	t.Run("valid payment passes", func(t *testing.T) {
		if err := middlewares.ValidateStruct(valid); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
	})

	t.Run("manual method without provider passes", func(t *testing.T) {
		in := PaymentCreateDTO{Amount: 40, Method: "cash"}
		if err := middlewares.ValidateStruct(in); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(*PaymentCreateDTO)
	}{
		{"zero amount", func(p *PaymentCreateDTO) { p.Amount = 0 }},
		{"negative amount", func(p *PaymentCreateDTO) { p.Amount = -5 }},
		{"unknown method", func(p *PaymentCreateDTO) { p.Method = "barter" }},
		{"unknown provider", func(p *PaymentCreateDTO) { p.Provider = "acme" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if err := middlewares.ValidateStruct(in); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSettingsUpdateDTOValidation(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	n := func(v int) *int { return &v }
	s := func(v string) *string { return &v }

	t.Run("valid patch passes", func(t *testing.T) {
		in := SettingsUpdateDTO{DefaultTaxRate: f(0.0825), PaymentTermDays: n(15), Currency: s("EUR")}
		if err := middlewares.ValidateStruct(in); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
	})
	t.Run("empty patch passes", func(t *testing.T) {
		if err := middlewares.ValidateStruct(SettingsUpdateDTO{}); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
	})

	cases := []struct {
		name string
		in   SettingsUpdateDTO
	}{
		{"tax rate above 1", SettingsUpdateDTO{DefaultTaxRate: f(1.5)}},
		{"negative tax rate", SettingsUpdateDTO{DefaultTaxRate: f(-0.1)}},
		{"payment term too long", SettingsUpdateDTO{PaymentTermDays: n(5000)}},
		{"lowercase currency", SettingsUpdateDTO{Currency: s("usd")}},
		{"currency wrong length", SettingsUpdateDTO{Currency: s("US")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := middlewares.ValidateStruct(tc.in); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
