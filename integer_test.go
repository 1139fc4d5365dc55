package yson

import "testing"

func TestParseInteger(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		detectBase bool
		want       int64
		wantOk     bool
	}{
		{"zero", "0", false, 0, true},
		{"positive", "123", false, 123, true},
		{"explicit plus", "+123", false, 123, true},
		{"negative", "-123", false, -123, true},
		{"true keyword", "true", false, 1, true},
		{"false keyword", "false", false, 0, true},
		{"null keyword", "null", false, 0, true},
		{"empty", "", false, 0, false},
		{"plain underscore rejected without detectBase", "1_000", false, 0, false},
		{"underscore accepted with detectBase", "1_000", true, 1000, true},
		{"leading underscore rejected", "_1", true, 0, false},
		{"trailing underscore rejected", "1_", true, 0, false},
		{"consecutive underscores rejected", "1__0", true, 0, false},
		{"hex prefix", "0x1F", true, 31, true},
		{"octal prefix", "0o17", true, 15, true},
		{"binary prefix", "0b101", true, 5, true},
		{"hex prefix without detectBase is invalid digits", "0x1F", false, 0, false},
		{"max int64", "9223372036854775807", false, 9223372036854775807, true},
		{"min int64", "-9223372036854775808", false, -9223372036854775808, true},
		{"overflow positive", "9223372036854775808", false, 0, false},
		{"overflow negative", "-9223372036854775809", false, 0, false},
		{"not a number", "abc", false, 0, false},
		{"bare sign", "-", false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseInteger([]byte(tt.s), tt.detectBase)
			if ok != tt.wantOk {
				t.Fatalf("ParseInteger(%q, %v) ok = %v, want %v", tt.s, tt.detectBase, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Fatalf("ParseInteger(%q, %v) = %d, want %d", tt.s, tt.detectBase, got, tt.want)
			}
		})
	}
}

func TestParseUnsignedInteger(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		want   uint64
		wantOk bool
	}{
		{"zero", "0", 0, true},
		{"max uint64", "18446744073709551615", 18446744073709551615, true},
		{"negative rejected", "-1", 0, false},
		{"overflow", "18446744073709551616", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseUnsignedInteger([]byte(tt.s), false)
			if ok != tt.wantOk {
				t.Fatalf("ParseUnsignedInteger(%q) ok = %v, want %v", tt.s, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Fatalf("ParseUnsignedInteger(%q) = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}

func TestNarrowingConversions(t *testing.T) {
	if v, ok := ToInt8(127); !ok || v != 127 {
		t.Fatalf("ToInt8(127) = %d, %v", v, ok)
	}
	if _, ok := ToInt8(128); ok {
		t.Fatal("ToInt8(128) should not round-trip")
	}
	if v, ok := ToUint8(255); !ok || v != 255 {
		t.Fatalf("ToUint8(255) = %d, %v", v, ok)
	}
	if _, ok := ToUint8(-1); ok {
		t.Fatal("ToUint8(-1) should fail: negative")
	}
	if _, ok := ToUint8(256); ok {
		t.Fatal("ToUint8(256) should not round-trip")
	}
	if v, ok := ToUint64(42); !ok || v != 42 {
		t.Fatalf("ToUint64(42) = %d, %v", v, ok)
	}
	if _, ok := ToUint64(-1); ok {
		t.Fatal("ToUint64(-1) should fail: negative")
	}
}
