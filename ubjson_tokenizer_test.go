package yson

import (
	"bytes"
	"testing"
)

func newTestUBJSONTokenizer(data []byte) *ubjsonTokenizer {
	return newUBJSONTokenizer(bytes.NewReader(data))
}

func TestUBJSONTokenizer_FixedScalars(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want UBJSONTokenType
	}{
		{"null", []byte{'Z'}, UBJSONNull},
		{"true", []byte{'T'}, UBJSONTrue},
		{"false", []byte{'F'}, UBJSONFalse},
		{"int8", []byte{'i', 5}, UBJSONInt8},
		{"uint8", []byte{'U', 200}, UBJSONUint8},
		{"int16", []byte{'I', 0x01, 0x02}, UBJSONInt16},
		{"int32", []byte{'l', 0, 0, 0, 1}, UBJSONInt32},
		{"int64", []byte{'L', 0, 0, 0, 0, 0, 0, 0, 1}, UBJSONInt64},
		{"char", []byte{'C', 'x'}, UBJSONChar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tok := newTestUBJSONTokenizer(tt.data)
			if !tok.Next(UBJSONUnknown) {
				t.Fatalf("Next: %v", tok.Err())
			}
			if tok.TokenType() != tt.want {
				t.Fatalf("TokenType() = %v, want %v", tok.TokenType(), tt.want)
			}
		})
	}
}

func TestUBJSONTokenizer_String(t *testing.T) {
	tok := newTestUBJSONTokenizer([]byte{'S', 'U', 5, 'h', 'e', 'l', 'l', 'o'})
	if !tok.Next(UBJSONUnknown) {
		t.Fatalf("Next: %v", tok.Err())
	}
	if tok.TokenType() != UBJSONString {
		t.Fatalf("TokenType() = %v, want UBJSONString", tok.TokenType())
	}
	if string(tok.Payload()) != "hello" {
		t.Fatalf("Payload() = %q, want hello", tok.Payload())
	}
}

func TestUBJSONTokenizer_ContainerMarkers(t *testing.T) {
	tok := newTestUBJSONTokenizer([]byte{'[', ']', '{', '}'})
	if !tok.Next(UBJSONUnknown) || tok.TokenType() != UBJSONStartArray {
		t.Fatalf("expected UBJSONStartArray, got %v (%v)", tok.TokenType(), tok.Err())
	}
	if !tok.Next(UBJSONUnknown) || tok.TokenType() != UBJSONEndArray {
		t.Fatalf("expected UBJSONEndArray, got %v (%v)", tok.TokenType(), tok.Err())
	}
	if !tok.Next(UBJSONUnknown) || tok.TokenType() != UBJSONStartObject {
		t.Fatalf("expected UBJSONStartObject, got %v (%v)", tok.TokenType(), tok.Err())
	}
	if !tok.Next(UBJSONUnknown) || tok.TokenType() != UBJSONEndObject {
		t.Fatalf("expected UBJSONEndObject, got %v (%v)", tok.TokenType(), tok.Err())
	}
}

func TestUBJSONTokenizer_OptimizedArrayWithDeclaredType(t *testing.T) {
	tok := newTestUBJSONTokenizer([]byte{'[', '$', 'U', '#', 'i', 3})
	if !tok.Next(UBJSONUnknown) {
		t.Fatalf("Next: %v", tok.Err())
	}
	if tok.TokenType() != UBJSONStartOptimizedArray {
		t.Fatalf("TokenType() = %v, want UBJSONStartOptimizedArray", tok.TokenType())
	}
	if tok.ContentType() != UBJSONUint8 {
		t.Fatalf("ContentType() = %v, want UBJSONUint8", tok.ContentType())
	}
	if tok.ContentSize() != 3 {
		t.Fatalf("ContentSize() = %d, want 3", tok.ContentSize())
	}
}

func TestUBJSONTokenizer_BareCountOptimizedArray(t *testing.T) {
	tok := newTestUBJSONTokenizer([]byte{'[', '#', 'i', 2})
	if !tok.Next(UBJSONUnknown) {
		t.Fatalf("Next: %v", tok.Err())
	}
	if tok.TokenType() != UBJSONStartOptimizedArray {
		t.Fatalf("TokenType() = %v, want UBJSONStartOptimizedArray", tok.TokenType())
	}
	if tok.ContentSize() != 2 {
		t.Fatalf("ContentSize() = %d, want 2", tok.ContentSize())
	}
}

func TestUBJSONTokenizer_NextKey(t *testing.T) {
	tok := newTestUBJSONTokenizer([]byte{'U', 1, 'a', '}'})
	if !tok.NextKey() {
		t.Fatalf("NextKey: %v", tok.Err())
	}
	if string(tok.Payload()) != "a" {
		t.Fatalf("Payload() = %q, want a", tok.Payload())
	}
	if !tok.NextKey() {
		t.Fatalf("NextKey: %v", tok.Err())
	}
	if tok.TokenType() != UBJSONEndObject {
		t.Fatalf("TokenType() = %v, want UBJSONEndObject", tok.TokenType())
	}
}

func TestUBJSONTokenizer_ReadBulk(t *testing.T) {
	tok := newTestUBJSONTokenizer([]byte{10, 20, 30})
	buf, ok := tok.ReadBulk(3, UBJSONUint8)
	if !ok {
		t.Fatalf("ReadBulk: %v", tok.Err())
	}
	if !bytes.Equal(buf, []byte{10, 20, 30}) {
		t.Fatalf("ReadBulk() = %v, want [10 20 30]", buf)
	}
}

func TestUBJSONTokenizer_PrematureEndOfInput(t *testing.T) {
	tok := newTestUBJSONTokenizer([]byte{'i'})
	if tok.Next(UBJSONUnknown) {
		t.Fatal("expected Next to fail on truncated payload")
	}
	if tok.Err() == nil {
		t.Fatal("expected a non-nil Err()")
	}
}

func TestUBJSONTokenizer_UnrecognizedMarker(t *testing.T) {
	tok := newTestUBJSONTokenizer([]byte{'?'})
	if tok.Next(UBJSONUnknown) {
		t.Fatal("expected Next to fail on an unrecognized marker")
	}
	if tok.Err() == nil {
		t.Fatal("expected a non-nil Err()")
	}
}
