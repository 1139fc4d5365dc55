package yson

import "testing"

func TestDetailedValueType_Coarse(t *testing.T) {
	tests := []struct {
		detail DetailedValueType
		want   ValueType
	}{
		{DetailNull, TypeNull},
		{DetailBoolean, TypeBoolean},
		{DetailString, TypeString},
		{DetailChar, TypeString},
		{DetailObject, TypeObject},
		{DetailArray, TypeArray},
		{DetailUint8, TypeInteger},
		{DetailSint64, TypeInteger},
		{DetailBigInt, TypeInteger},
		{DetailFloat32, TypeFloat},
		{DetailFloat64, TypeFloat},
		{DetailHighPrecisionNumber, TypeFloat},
		{DetailInvalid, TypeInvalid},
		{DetailUnknown, TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.detail.String(), func(t *testing.T) {
			t.Parallel()
			if got := tt.detail.Coarse(); got != tt.want {
				t.Fatalf("%v.Coarse() = %v, want %v", tt.detail, got, tt.want)
			}
		})
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name string
		from DetailedValueType
		to   DetailedValueType
		want bool
	}{
		{"self always compatible", DetailUint8, DetailUint8, true},
		{"narrower unsigned fits wider unsigned", DetailUint8, DetailUint16, true},
		{"wider unsigned does not fit narrower", DetailUint32, DetailUint8, false},
		{"nonnegative uint7 fits any signed width", DetailUint7, DetailSint8, true},
		{"uint8 fits sint16 but not sint8", DetailUint8, DetailSint16, true},
		{"uint8 does not fit sint8", DetailUint8, DetailSint8, false},
		{"uint32 fits sint64", DetailUint32, DetailSint64, true},
		{"float64 dominates every integer", DetailSint64, DetailFloat64, true},
		{"float32 dominates uint32", DetailUint32, DetailFloat32, true},
		{"float32 dominates uint64", DetailUint64, DetailFloat32, true},
		{"float32 dominates sint64", DetailSint64, DetailFloat32, true},
		{"float64 dominates float32", DetailFloat32, DetailFloat64, true},
		{"float32 does not dominate float64", DetailFloat64, DetailFloat32, false},
		{"string incompatible with integer", DetailString, DetailUint8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsCompatible(tt.from, tt.to); got != tt.want {
				t.Fatalf("IsCompatible(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
