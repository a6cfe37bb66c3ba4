package format

import "testing"

func TestYen(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "Small amount", amount: 980, expected: "¥980"},
		{name: "Thousands grouping", amount: 1234, expected: "¥1,234"},
		{name: "Millions grouping", amount: 1234567, expected: "¥1,234,567"},
		{name: "Negative", amount: -1234, expected: "-¥1,234"},
		{name: "Zero", amount: 0, expected: "¥0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Yen(tt.amount); got != tt.expected {
				t.Errorf("Yen(%v) = %s, expected %s", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericYen(t *testing.T) {
	if got := NumericYen(-1234567); got != "-1,234,567" {
		t.Errorf("NumericYen(-1234567) = %s, expected -1,234,567", got)
	}
	if got := NumericYen(500); got != "500" {
		t.Errorf("NumericYen(500) = %s, expected 500", got)
	}
}
