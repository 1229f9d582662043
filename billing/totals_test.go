package billing

import (
	"errors"
	"testing"
)

func TestCompute(t *testing.T) {
	t.Run("subtotal sums qty times price", func(t *testing.T) {
		lines := []Line{
			{Description: "Framing labor", Quantity: 8, UnitPrice: 85},
			{Description: "Lumber", Quantity: 12, UnitPrice: 24.5},
		}
		got := Compute(lines, 0)
		if got.Subtotal != 974.00 {
			t.Fatalf("subtotal = %v, want 974.00", got.Subtotal)
		}
		if got.Tax != 0 || got.Total != 974.00 {
			t.Fatalf("tax/total = %v/%v, want 0/974.00", got.Tax, got.Total)
		}
	})

	t.Run("fractional quantities", func(t *testing.T) {
		lines := []Line{{Description: "Labor", Quantity: 1.5, UnitPrice: 10.00}}
		got := Compute(lines, 0)
		if got.Subtotal != 15.00 {
			t.Fatalf("subtotal = %v, want 15.00", got.Subtotal)
		}
	})

	t.Run("ten percent round trip", func(t *testing.T) {
		lines := []Line{{Description: "Deck build", Quantity: 1, UnitPrice: 100}}
		got := Compute(lines, 0.10)
		if got.Subtotal != 100 || got.Tax != 10 || got.Total != 110 {
			t.Fatalf("got %+v, want 100/10/110", got)
		}
	})

	t.Run("thousand dollar invoice", func(t *testing.T) {
		lines := []Line{
			{Description: "Demo", Quantity: 4, UnitPrice: 150},
			{Description: "Haul away", Quantity: 1, UnitPrice: 400},
		}
		got := Compute(lines, 0.10)
		if got.Subtotal != 1000 || got.Tax != 100 || got.Total != 1100 {
			t.Fatalf("got %+v, want 1000/100/1100", got)
		}
	})

	t.Run("rate comes from settings not a constant", func(t *testing.T) {
		lines := []Line{{Description: "Labor", Quantity: 1, UnitPrice: 200}}
		got := Compute(lines, 0.0825)
		if got.Tax != 16.50 {
			t.Fatalf("tax = %v, want 16.50", got.Tax)
		}
		if got.Total != 216.50 {
			t.Fatalf("total = %v, want 216.50", got.Total)
		}
	})

	t.Run("cent rounding per line", func(t *testing.T) {
		// 3 * 0.333 = 0.999 -> 1.00 at line level
		lines := []Line{{Description: "Fasteners", Quantity: 3, UnitPrice: 0.333}}
		got := Compute(lines, 0)
		if got.Subtotal != 1.00 {
			t.Fatalf("subtotal = %v, want 1.00", got.Subtotal)
		}
	})
}

func TestValidateLines(t *testing.T) {
	valid := Line{Description: "Paint", Quantity: 2, UnitPrice: 45}

	t.Run("empty set rejected", func(t *testing.T) {
		if err := ValidateLines(nil); !errors.Is(err, ErrNoLineItems) {
			t.Fatalf("expected ErrNoLineItems, got %v", err)
		}
	})

	t.Run("empty description rejected", func(t *testing.T) {
		l := valid
		l.Description = ""
		if err := ValidateLines([]Line{l}); !errors.Is(err, ErrEmptyDescription) {
			t.Fatalf("expected ErrEmptyDescription, got %v", err)
		}
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		l := valid
		l.Quantity = 0
		if err := ValidateLines([]Line{l}); !errors.Is(err, ErrNonPositiveQty) {
			t.Fatalf("expected ErrNonPositiveQty, got %v", err)
		}
	})

	t.Run("negative price rejected", func(t *testing.T) {
		l := valid
		l.UnitPrice = -1
		if err := ValidateLines([]Line{l}); !errors.Is(err, ErrNegativePrice) {
			t.Fatalf("expected ErrNegativePrice, got %v", err)
		}
	})

	t.Run("free line allowed", func(t *testing.T) {
		l := valid
		l.UnitPrice = 0
		if err := ValidateLines([]Line{l}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestCatalogPrice(t *testing.T) {
	if got := CatalogPrice(100, 25); got != 125.00 {
		t.Fatalf("CatalogPrice(100, 25) = %v, want 125.00", got)
	}
	if got := CatalogPrice(19.99, 0); got != 19.99 {
		t.Fatalf("CatalogPrice(19.99, 0) = %v, want 19.99", got)
	}
	if got := CatalogPrice(33.33, 10); got != 36.66 {
		t.Fatalf("CatalogPrice(33.33, 10) = %v, want 36.66", got)
	}
}
