package mathutil

import "testing"

func TestRoundLedger(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		expected float64
	}{
		{name: "Rounds down", val: 1234.4, expected: 1234},
		{name: "Rounds up", val: 1234.5, expected: 1235},
		{name: "Negative rounds away from zero", val: -1234.5, expected: -1235},
		{name: "Integer unchanged", val: 500, expected: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundLedger(tt.val); got != tt.expected {
				t.Errorf("RoundLedger(%v) = %v, expected %v", tt.val, got, tt.expected)
			}
		})
	}
}

func TestFloorZero(t *testing.T) {
	if got := FloorZero(-42.5); got != 0 {
		t.Errorf("FloorZero(-42.5) = %v, expected 0", got)
	}
	if got := FloorZero(42.5); got != 42.5 {
		t.Errorf("FloorZero(42.5) = %v, expected 42.5", got)
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{name: "Ten percent", value: 1000, percentage: 10, expected: 100},
		{name: "Over one hundred percent", value: 100, percentage: 150, expected: 150},
		{name: "Zero percent", value: 1000, percentage: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyPercentage(tt.value, tt.percentage); got != tt.expected {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v", tt.value, tt.percentage, got, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100, 100.4, 0.5) {
		t.Error("WithinTolerance(100, 100.4, 0.5) = false, expected true")
	}
	if WithinTolerance(100, 101, 0.5) {
		t.Error("WithinTolerance(100, 101, 0.5) = true, expected false")
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.4) {
		t.Error("IsZero(0.4) = false, expected true within ledger tolerance")
	}
	if IsZero(1) {
		t.Error("IsZero(1) = true, expected false")
	}
}
