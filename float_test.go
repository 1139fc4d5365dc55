package yson

import (
	"math"
	"testing"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		want    float64
		wantNaN bool
		wantOk  bool
	}{
		{"integer literal", "42", 42, false, true},
		{"negative", "-42", -42, false, true},
		{"plain decimal", "3.14", 3.14, false, true},
		{"leading dot omitted", "-.5", -0.5, false, true},
		{"trailing dot omitted", "5.", 5, false, true},
		{"bare dot invalid", ".", 0, false, false},
		{"exponent", "1e10", 1e10, false, true},
		{"signed exponent", "1.5e-3", 1.5e-3, false, true},
		{"exponent with no digits invalid", "1e", 0, false, false},
		{"exponent magnitude at bound", "1e308", 1e308, false, true},
		{"exponent magnitude over bound", "1e309", 0, false, false},
		{"negative exponent over bound", "1e-309", 0, false, false},
		{"infinity literal", "Infinity", math.Inf(1), false, true},
		{"negative infinity literal", "-Infinity", math.Inf(-1), false, true},
		{"nan literal", "NaN", 0, true, true},
		{"null is nan", "null", 0, true, true},
		{"empty", "", 0, false, false},
		{"trailing garbage", "1.5x", 0, false, false},
		{"double dot invalid", "1..5", 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseFloat([]byte(tt.s))
			if ok != tt.wantOk {
				t.Fatalf("ParseFloat(%q) ok = %v, want %v", tt.s, ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if tt.wantNaN {
				if !math.IsNaN(got) {
					t.Fatalf("ParseFloat(%q) = %v, want NaN", tt.s, got)
				}
				return
			}
			if got != tt.want {
				t.Fatalf("ParseFloat(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}
