package yson

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustJSONItem(t *testing.T, src string) Item {
	t.Helper()
	tr, err := NewBufferTextReader([]byte(src))
	if err != nil {
		t.Fatalf("NewBufferTextReader: %v", err)
	}
	r := NewJSONReader(tr)
	r.SetOptions(ExtendedFloats | ExtendedIntegers)
	if _, err := r.NextValue(); err != nil {
		t.Fatalf("NextValue: %v", err)
	}
	item, err := ReadItem(NewJSONCursor(r))
	if err != nil {
		t.Fatalf("ReadItem: %v", err)
	}
	return item
}

func mustUBJSONItem(t *testing.T, src []byte, opts UBJSONOptions) Item {
	t.Helper()
	r := NewUBJSONReader(bytes.NewReader(src))
	r.SetOptions(opts)
	if _, err := r.NextValue(); err != nil {
		t.Fatalf("NextValue: %v", err)
	}
	item, err := ReadItem(NewUBJSONCursor(r))
	if err != nil {
		t.Fatalf("ReadItem: %v", err)
	}
	return item
}

// itemToGo flattens an Item into plain Go values so test expectations can be
// written as ordinary map/slice literals and compared with go-cmp instead of
// poking at Item's unexported variant fields directly.
func itemToGo(it Item) interface{} {
	switch {
	case it.IsArray():
		arr := it.Array()
		out := make([]interface{}, len(arr.Items))
		for i, e := range arr.Items {
			out[i] = itemToGo(e)
		}
		return out
	case it.IsObject():
		obj := it.Object()
		out := map[string]interface{}{}
		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			out[k] = itemToGo(v)
		}
		return out
	case it.IsValue():
		v := it.Value()
		switch {
		case v.IsNull():
			return nil
		case v.Type() == TypeBoolean:
			b, _ := v.Bool()
			return b
		case v.Type() == TypeInteger:
			n, _ := v.Int64()
			return n
		case v.Type() == TypeFloat:
			f, _ := v.Float64()
			return f
		default:
			s, _ := v.String()
			return s
		}
	default:
		return nil
	}
}

func TestReadItem_JSON(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want interface{}
	}{
		{"null", `null`, nil},
		{"bool", `true`, true},
		{"int", `42`, int64(42)},
		{"negative int", `-7`, int64(-7)},
		{"float", `3.5`, 3.5},
		{"string", `"hello"`, "hello"},
		{"escaped string", `"line\nbreak"`, "line\nbreak"},
		{"empty array", `[]`, []interface{}{}},
		{"array", `[1, 2, 3]`, []interface{}{int64(1), int64(2), int64(3)}},
		{"nested array", `[1, [2, 3], 4]`,
			[]interface{}{int64(1), []interface{}{int64(2), int64(3)}, int64(4)}},
		{"empty object", `{}`, map[string]interface{}{}},
		{"object", `{"a": 1, "b": "two"}`,
			map[string]interface{}{"a": int64(1), "b": "two"}},
		{"nested object", `{"a": {"b": [1, 2]}}`,
			map[string]interface{}{"a": map[string]interface{}{"b": []interface{}{int64(1), int64(2)}}}},
		{"duplicate key keeps last value", `{"a": 1, "a": 2}`,
			map[string]interface{}{"a": int64(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := mustJSONItem(t, tt.src)
			got := itemToGo(item)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("itemToGo() = %v, want nil", got)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("itemToGo() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadItem_JSON_DuplicateKeyPreservesPosition(t *testing.T) {
	item := mustJSONItem(t, `{"a": 1, "b": 2, "a": 3}`)
	obj := item.Object()
	got, want := obj.Keys(), []string{"a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}
	v, ok := obj.Get("a")
	if !ok {
		t.Fatal("missing key a")
	}
	n, _ := v.Value().Int64()
	if n != 3 {
		t.Fatalf("Get(a) = %d, want 3 (last write wins)", n)
	}
}

func buildUBJSON(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestReadItem_UBJSON(t *testing.T) {
	// {"a": [1, 2]}
	doc := buildUBJSON(
		[]byte{'{'},
		[]byte{'U', 1, 'a'}, // key "a": length-prefixed bare string, no 'S' marker
		[]byte{'['},
		[]byte{'i', 1},
		[]byte{'i', 2},
		[]byte{']'},
		[]byte{'}'},
	)
	item := mustUBJSONItem(t, doc, ExpandOptimizedByteArrays)
	want := map[string]interface{}{"a": []interface{}{int64(1), int64(2)}}
	if diff := cmp.Diff(want, itemToGo(item)); diff != "" {
		t.Fatalf("itemToGo() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadItem_UBJSON_OptimizedByteArrayExpanded(t *testing.T) {
	// [$][U][#][i][3] U U U  -- optimized array of 3 uint8s
	doc := []byte{'[', '$', 'U', '#', 'i', 3, 10, 20, 30}
	item := mustUBJSONItem(t, doc, ExpandOptimizedByteArrays)
	want := []interface{}{int64(10), int64(20), int64(30)}
	if diff := cmp.Diff(want, itemToGo(item)); diff != "" {
		t.Fatalf("expanded optimized array mismatch (-want +got):\n%s", diff)
	}
}

func TestReadItem_UBJSON_OptimizedByteArrayAsBinary(t *testing.T) {
	doc := []byte{'[', '$', 'U', '#', 'i', 3, 10, 20, 30}
	item := mustUBJSONItem(t, doc, 0)
	if !item.IsValue() {
		t.Fatalf("expected a scalar binary blob item, got array=%v object=%v",
			item.IsArray(), item.IsObject())
	}
	data, ok := item.Value().Binary()
	if !ok {
		t.Fatal("Binary() ok = false")
	}
	if diff := cmp.Diff([]byte{10, 20, 30}, data); diff != "" {
		t.Fatalf("binary blob mismatch (-want +got):\n%s", diff)
	}
}

func TestItem_WrongAccessorPanics(t *testing.T) {
	item := mustJSONItem(t, `42`)
	defer func() {
		if recover() == nil {
			t.Fatal("expected Array() on a scalar item to panic")
		}
	}()
	_ = item.Array()
}
