package model

import "testing"

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "integer", input: "42", want: 42, ok: true},
		{name: "float", input: "10.0001", want: 10.0001, ok: true},
		{name: "negative", input: "-3.5", want: -3.5, ok: true},
		{name: "leading dot", input: ".5", want: 0.5, ok: true},
		{name: "exponent", input: "1e3", want: 1000, ok: true},
		{name: "leading whitespace", input: "  7", want: 7, ok: true},
		{name: "trailing text", input: "12 kWh", want: 12, ok: true},
		{name: "repeated dots", input: "1.2.3", want: 1.2, ok: true},
		{name: "text", input: "Bathroom", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "sign only", input: "-", ok: false},
		{name: "overflow", input: "1e400", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseNumber(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
