package yson

import "testing"

func TestSniffDialect(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		want    Dialect
		wantErr bool
	}{
		{"empty input is JSON", "", DialectJSON, false},
		{"utf8 BOM is JSON", "\xEF\xBB\xBF{}", DialectJSON, false},
		{"utf16be BOM is JSON", "\xFE\xFF\x00{", DialectJSON, false},
		{"leading whitespace then object", "  \t\n{\"a\":1}", DialectJSON, false},
		{"bare number", "42", DialectJSON, false},
		{"bare string", `"hi"`, DialectJSON, false},
		{"negative number", "-1", DialectJSON, false},
		{"true literal", "true", DialectJSON, false},
		{"false literal", "false", DialectJSON, false},
		{"null literal", "null", DialectJSON, false},
		{"array of numbers", "[1, 2, 3]", DialectJSON, false},
		{"object with string key", `{"a": 1}`, DialectJSON, false},
		{"int16 marker", "IAA", DialectUBJSON, false},
		{"string marker", "SU\x05hello", DialectUBJSON, false},
		{"array of int8", "[i\x01i\x02]", DialectUBJSON, false},
		{"optimized array", "[$U#i\x03", DialectUBJSON, false},
		{"unrecognized leading byte", "Pluto", DialectUnknown, true},
		{"unmatched closing bracket", "]", DialectUnknown, true},
		{"all whitespace defaults to JSON", "   ", DialectJSON, false},
		{"empty object defaults to JSON", "{}", DialectJSON, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SniffDialect([]byte(tt.prefix))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SniffDialect(%q) = %v, nil; want error", tt.prefix, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SniffDialect(%q) error = %v", tt.prefix, err)
			}
			if got != tt.want {
				t.Fatalf("SniffDialect(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}
