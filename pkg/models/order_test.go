package models

import "testing"

func TestQuoteIsCountTimesUnitPrice(t *testing.T) {
	cases := []struct {
		count int
		total float64
	}{
		{10, 50.00},
		{25, 125.00},
		{50, 250.00},
		{100, 500.00},
	}
	for _, tc := range cases {
		q := NewQuote(tc.count)
		if q.Total != tc.total {
			t.Errorf("NewQuote(%d).Total = %.2f, want %.2f", tc.count, q.Total, tc.total)
		}
		if q.UnitPrice != UnitPrice {
			t.Errorf("NewQuote(%d).UnitPrice = %.2f", tc.count, q.UnitPrice)
		}
	}
}
