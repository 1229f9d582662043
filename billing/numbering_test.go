package billing

import "testing"

func TestNextNumber(t *testing.T) {
	t.Run("first document", func(t *testing.T) {
		if got := NextNumber(InvoicePrefix, ""); got != "INV-1001" {
			t.Fatalf("got %s, want INV-1001", got)
		}
	})

	t.Run("increments highest", func(t *testing.T) {
		if got := NextNumber(BidPrefix, "BID-1041"); got != "BID-1042" {
			t.Fatalf("got %s, want BID-1042", got)
		}
	})

	t.Run("garbage highest restarts sequence", func(t *testing.T) {
		if got := NextNumber(InvoicePrefix, "INV-abc"); got != "INV-1001" {
			t.Fatalf("got %s, want INV-1001", got)
		}
	})
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		number string
		want   int
	}{
		{"INV-1001", 1001},
		{"INV-9", 9},
		{"BID-1001", 0}, // wrong prefix
		{"INV1001", 0},
		{"INV--3", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := ParseNumber(InvoicePrefix, tc.number); got != tc.want {
			t.Errorf("ParseNumber(INV, %q) = %d, want %d", tc.number, got, tc.want)
		}
	}
}
