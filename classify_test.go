package yson

import "testing"

func TestGetValueType(t *testing.T) {
	tests := []struct {
		s    string
		want ValueType
	}{
		{"", TypeInvalid},
		{"0", TypeInteger},
		{"123", TypeInteger},
		{"-123", TypeInteger},
		{"+123", TypeInteger},
		{"0x1F", TypeInteger},
		{"0b101", TypeInteger},
		{"0o17", TypeInteger},
		{"0xZZ", TypeInvalid},
		{"3.14", TypeFloat},
		{"1e10", TypeFloat},
		{"1.5e-3", TypeFloat},
		{"Infinity", TypeFloat},
		{"-Infinity", TypeFloat},
		{"NaN", TypeFloat},
		{"true", TypeBoolean},
		{"false", TypeBoolean},
		{"null", TypeNull},
		{"-true", TypeInvalid},
		{"garbage", TypeInvalid},
		{"1_000", TypeInteger},
		{"1.2.3", TypeInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			t.Parallel()
			if got := GetValueType([]byte(tt.s)); got != tt.want {
				t.Fatalf("GetValueType(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestGetDetailedValueType(t *testing.T) {
	tests := []struct {
		s    string
		want DetailedValueType
	}{
		{"", DetailInvalid},
		{"0", DetailUint7},
		{"127", DetailUint7},
		{"128", DetailUint8},
		{"255", DetailUint8},
		{"256", DetailUint15},
		{"32767", DetailUint15},
		{"32768", DetailUint16},
		{"65535", DetailUint16},
		{"65536", DetailUint31},
		{"2147483647", DetailUint31},
		{"4294967295", DetailUint32},
		{"9223372036854775807", DetailUint63},
		{"18446744073709551615", DetailUint64},
		{"18446744073709551616", DetailBigInt},
		{"-128", DetailSint8},
		{"-129", DetailSint16},
		{"-32768", DetailSint16},
		{"-2147483648", DetailSint32},
		{"-9223372036854775808", DetailSint64},
		{"3.14", DetailFloat64},
		{"1e10", DetailFloat64},
		{"Infinity", DetailFloat64},
		{"NaN", DetailFloat64},
		{"true", DetailBoolean},
		{"false", DetailBoolean},
		{"null", DetailNull},
		{"garbage", DetailInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			t.Parallel()
			if got := GetDetailedValueType([]byte(tt.s)); got != tt.want {
				t.Fatalf("GetDetailedValueType(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}
