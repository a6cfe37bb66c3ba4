package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name        string
		format      string
		expectError bool
	}{
		{name: "Pretty", format: "pretty", expectError: false},
		{name: "CSV", format: "csv", expectError: false},
		{name: "Unknown", format: "table", expectError: true},
		{name: "Empty", format: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.expectError {
				t.Errorf("ValidateOutputFormat(%q) error = %v, expectError %v", tt.format, err, tt.expectError)
			}
		})
	}
}
