package yson

import "testing"

func TestNewReader_JSON(t *testing.T) {
	c, err := NewReader([]byte(`{"a": [1, 2], "b": "x"}`))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := c.NextValue(); err != nil {
		t.Fatalf("NextValue: %v", err)
	}
	item, err := ReadItem(c)
	if err != nil {
		t.Fatalf("ReadItem: %v", err)
	}
	if !item.IsObject() {
		t.Fatal("expected an object")
	}
	v, ok := item.ByKey("b")
	if !ok {
		t.Fatal("missing key b")
	}
	s, _ := v.Value().String()
	if s != "x" {
		t.Fatalf("b = %q, want x", s)
	}
}

func TestNewReader_UBJSON(t *testing.T) {
	doc := []byte{'[', 'i', 1, 'i', 2, ']'}
	c, err := NewReader(doc)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := c.NextValue(); err != nil {
		t.Fatalf("NextValue: %v", err)
	}
	item, err := ReadItem(c)
	if err != nil {
		t.Fatalf("ReadItem: %v", err)
	}
	if !item.IsArray() || len(item.Array().Items) != 2 {
		t.Fatalf("expected a 2-element array, got %+v", item)
	}
}

func TestNewReader_UnrecognizedInput(t *testing.T) {
	if _, err := NewReader([]byte("Pluto")); err == nil {
		t.Fatal("expected an error for unrecognized input")
	}
}
