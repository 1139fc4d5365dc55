package yson

import "go.mongodb.org/mongo-driver/bson/primitive"

// Value is a materialized scalar: exactly one of its Is* predicates is true,
// and the matching accessor returns the decoded payload.
//
// The original variant stores a raw token plus a type tag and parses lazily
// on each typed get(); here the scalar is decoded once, at build time, since
// a Go tree is typically walked more than once and the readers already do
// the decoding work as cheaply on first touch as on any later one.
type Value struct {
	detail DetailedValueType

	b   bool
	i   int64
	f   float64
	dec primitive.Decimal128
	s   string
	bin []byte
}

// Type returns the value's coarse classification.
func (v Value) Type() ValueType { return v.detail.Coarse() }

// DetailedType returns the value's fine-grained classification, including
// integer width and the UBJSON high-precision-number tag.
func (v Value) DetailedType() DetailedValueType { return v.detail }

// IsNull reports whether this value is the null literal.
func (v Value) IsNull() bool { return v.detail == DetailNull }

// Bool returns a boolean value and whether the value actually held one.
func (v Value) Bool() (bool, bool) { return v.b, v.detail == DetailBoolean }

// Int64 returns an integer value and whether the value actually held one.
func (v Value) Int64() (int64, bool) {
	return v.i, v.Type() == TypeInteger
}

// Float64 returns a float value as a float64. It also succeeds for integers
// and for a high-precision number, matching IsCompatible's float-dominates-
// integer rule.
func (v Value) Float64() (float64, bool) {
	switch v.Type() {
	case TypeFloat:
		return v.f, true
	case TypeInteger:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Decimal128 returns the exact decimal value of a UBJSON high-precision
// number, without the precision loss Float64 incurs for values that don't
// round-trip through float64.
func (v Value) Decimal128() (primitive.Decimal128, bool) {
	return v.dec, v.detail == DetailHighPrecisionNumber
}

// String returns a string (or UBJSON char) value.
func (v Value) String() (string, bool) {
	return v.s, v.detail == DetailString || v.detail == DetailChar
}

// Base64 decodes a string value's contents as base64.
func (v Value) Base64() ([]byte, bool) {
	s, ok := v.String()
	if !ok {
		return nil, false
	}
	data, err := DecodeBase64([]byte(s))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Binary returns the raw bytes of a UBJSON optimized byte array that was
// read as a binary blob rather than expanded into scalar elements.
func (v Value) Binary() ([]byte, bool) { return v.bin, v.detail == DetailArray && v.bin != nil }

// Array is an ordered sequence of items.
type Array struct {
	Items []Item
}

// Object is an ordered set of key/value members, preserving first-seen
// insertion order the way JsonObject's keys deque does, while still
// supporting O(1) lookup by name.
type Object struct {
	keys   []string
	lookup map[string]int
	Values []Item
}

// NewObject returns an empty Object ready for Set.
func NewObject() *Object {
	return &Object{lookup: map[string]int{}}
}

// Keys returns the member names in first-seen order.
func (o *Object) Keys() []string { return o.keys }

// Len returns the number of members.
func (o *Object) Len() int { return len(o.keys) }

// Get returns the member named key and whether it exists. A repeated key
// overwrites the earlier member's value in place, matching
// unordered_map::insert_or_assign, while keeping the key's original
// position in Keys.
func (o *Object) Get(key string) (Item, bool) {
	i, ok := o.lookup[key]
	if !ok {
		return Item{}, false
	}
	return o.Values[i], true
}

// Set adds or overwrites the member named key.
func (o *Object) Set(key string, item Item) {
	if i, ok := o.lookup[key]; ok {
		o.Values[i] = item
		return
	}
	o.lookup[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.Values = append(o.Values, item)
}

// Item is a materialized tree node: exactly one of IsArray, IsObject, or
// IsValue is true, mirroring JsonItem's array/object/value variant.
type Item struct {
	array  *Array
	object *Object
	value  *Value
}

// IsArray reports whether this item is an array.
func (it Item) IsArray() bool { return it.array != nil }

// Array returns the item's elements. Panics if IsArray is false, matching
// the original's exception-on-wrong-accessor contract translated to Go's
// nearest untyped-variant idiom: callers check IsArray first.
func (it Item) Array() Array {
	if it.array == nil {
		panic("yson: item is not an array")
	}
	return *it.array
}

// IsObject reports whether this item is an object.
func (it Item) IsObject() bool { return it.object != nil }

// Object returns the item's members. Panics if IsObject is false.
func (it Item) Object() *Object {
	if it.object == nil {
		panic("yson: item is not an object")
	}
	return it.object
}

// IsValue reports whether this item is a scalar.
func (it Item) IsValue() bool { return it.value != nil }

// Value returns the item's scalar payload. Panics if IsValue is false.
func (it Item) Value() Value {
	if it.value == nil {
		panic("yson: item is not a value")
	}
	return *it.value
}

// At indexes into an array item, returning the zero Item and false if the
// item isn't an array or the index is out of range.
func (it Item) At(index int) (Item, bool) {
	if it.array == nil || index < 0 || index >= len(it.array.Items) {
		return Item{}, false
	}
	return it.array.Items[index], true
}

// ByKey looks up a member of an object item, returning the zero Item and
// false if the item isn't an object or has no such member.
func (it Item) ByKey(key string) (Item, bool) {
	if it.object == nil {
		return Item{}, false
	}
	return it.object.Get(key)
}

func valueItem(v Value) Item    { return Item{value: &v} }
func arrayItem(a Array) Item    { return Item{array: &a} }
func objectItem(o *Object) Item { return Item{object: o} }

// Cursor is the subset of JSONReader's and UBJSONReader's navigation and
// scalar-decoding surface that ReadItem needs to materialize a tree from
// either one. Both readers already expose every one of these with the same
// semantics; the two small adapter types below only paper over the
// differing parameter/return shapes each reader's Read* methods settled on
// (JSONReader signals failure purely through error; UBJSONReader, following
// the original's two-phase "does this token match T" probes, additionally
// returns an ok bool).
type Cursor interface {
	NextValue() (bool, error)
	NextKey() (bool, error)
	Enter() error
	Leave() error
	ValueType() (ValueType, error)
	DetailedValueType() (DetailedValueType, error)
	ReadKeyName() (string, error)
	readValue(DetailedValueType) (Value, error)
	errorf(format string, args ...interface{}) error
}

// ReadItem materializes the value the cursor is currently positioned on
// (and, if it's a container, everything nested inside it) into an Item.
// It is the general form of UBJsonReader::readItem, generalized to walk
// either dialect's cursor instead of being written twice.
func ReadItem(c Cursor) (Item, error) {
	dvt, err := c.DetailedValueType()
	if err != nil {
		return Item{}, err
	}
	switch dvt {
	case DetailObject:
		return readObjectItem(c)
	case DetailArray:
		return readArrayItem(c)
	default:
		v, err := c.readValue(dvt)
		if err != nil {
			return Item{}, err
		}
		return valueItem(v), nil
	}
}

func readArrayItem(c Cursor) (Item, error) {
	if oa, ok := c.(optimizedArrayCursor); ok {
		if item, handled, err := oa.readOptimizedArrayAsBlob(); handled || err != nil {
			return item, err
		}
	}

	if err := c.Enter(); err != nil {
		return Item{}, err
	}
	var items []Item
	for {
		ok, err := c.NextValue()
		if err != nil {
			return Item{}, err
		}
		if !ok {
			break
		}
		item, err := ReadItem(c)
		if err != nil {
			return Item{}, err
		}
		items = append(items, item)
	}
	if err := c.Leave(); err != nil {
		return Item{}, err
	}
	return arrayItem(Array{Items: items}), nil
}

func readObjectItem(c Cursor) (Item, error) {
	obj := NewObject()
	if err := c.Enter(); err != nil {
		return Item{}, err
	}
	for {
		ok, err := c.NextKey()
		if err != nil {
			return Item{}, err
		}
		if !ok {
			break
		}
		key, err := c.ReadKeyName()
		if err != nil {
			return Item{}, err
		}
		if ok, err := c.NextValue(); err != nil {
			return Item{}, err
		} else if !ok {
			return Item{}, c.errorf("key without value: %s", key)
		}
		item, err := ReadItem(c)
		if err != nil {
			return Item{}, err
		}
		obj.Set(key, item)
	}
	if err := c.Leave(); err != nil {
		return Item{}, err
	}
	return objectItem(obj), nil
}

// optimizedArrayCursor is implemented only by the UBJSON adapter: it gives
// readArrayItem a chance to take the bulk binary-blob fast path for an
// optimized int8/uint8/char array before falling back to the generic
// element-by-element walk every other array (JSON or UBJSON) takes.
type optimizedArrayCursor interface {
	readOptimizedArrayAsBlob() (Item, bool, error)
}

// jsonCursor adapts *JSONReader to Cursor.
type jsonCursor struct{ r *JSONReader }

// NewJSONCursor wraps r so ReadItem can materialize a tree from it.
func NewJSONCursor(r *JSONReader) Cursor { return jsonCursor{r} }

func (c jsonCursor) NextValue() (bool, error)      { return c.r.NextValue() }
func (c jsonCursor) NextKey() (bool, error)        { return c.r.NextKey() }
func (c jsonCursor) Enter() error                  { return c.r.Enter() }
func (c jsonCursor) Leave() error                  { return c.r.Leave() }
func (c jsonCursor) ValueType() (ValueType, error) { return c.r.ValueType() }
func (c jsonCursor) DetailedValueType() (DetailedValueType, error) {
	return c.r.DetailedValueType()
}
func (c jsonCursor) ReadKeyName() (string, error) { return c.r.ReadString() }

func (c jsonCursor) errorf(format string, args ...interface{}) error {
	return c.r.errorf(format, args...)
}

func (c jsonCursor) readValue(dvt DetailedValueType) (Value, error) {
	switch dvt.Coarse() {
	case TypeNull:
		return Value{detail: DetailNull}, nil
	case TypeBoolean:
		b, err := c.r.ReadBool()
		if err != nil {
			return Value{}, err
		}
		return Value{detail: DetailBoolean, b: b}, nil
	case TypeInteger:
		n, err := c.r.ReadInt64()
		if err != nil {
			return Value{}, err
		}
		return Value{detail: dvt, i: n}, nil
	case TypeFloat:
		f, err := c.r.ReadFloat64()
		if err != nil {
			return Value{}, err
		}
		return Value{detail: dvt, f: f}, nil
	case TypeString:
		s, err := c.r.ReadString()
		if err != nil {
			return Value{}, err
		}
		return Value{detail: DetailString, s: s}, nil
	default:
		return Value{}, c.r.errorf("invalid value")
	}
}

// ubjsonCursor adapts *UBJSONReader to Cursor.
type ubjsonCursor struct{ r *UBJSONReader }

// NewUBJSONCursor wraps r so ReadItem can materialize a tree from it,
// honoring r's ExpandOptimizedByteArrays option when it encounters an
// optimized int8/uint8/char array.
func NewUBJSONCursor(r *UBJSONReader) Cursor { return ubjsonCursor{r} }

func (c ubjsonCursor) NextValue() (bool, error)     { return c.r.NextValue() }
func (c ubjsonCursor) NextKey() (bool, error)       { return c.r.NextKey() }
func (c ubjsonCursor) Enter() error                 { return c.r.Enter() }
func (c ubjsonCursor) Leave() error                 { return c.r.Leave() }
func (c ubjsonCursor) ValueType() (ValueType, error) { return c.r.ValueType() }
func (c ubjsonCursor) DetailedValueType() (DetailedValueType, error) {
	return c.r.DetailedValueType()
}
func (c ubjsonCursor) ReadKeyName() (string, error) { return c.r.ReadKeyName() }

func (c ubjsonCursor) errorf(format string, args ...interface{}) error {
	return c.r.tok.errorf(format, args...)
}

func (c ubjsonCursor) readOptimizedArrayAsBlob() (Item, bool, error) {
	if c.r.has(ExpandOptimizedByteArrays) || !c.r.IsOptimizedArray() {
		return Item{}, false, nil
	}
	switch c.r.tok.ContentType() {
	case UBJSONChar, UBJSONInt8, UBJSONUint8:
	default:
		return Item{}, false, nil
	}
	data, _, _, ok, err := c.r.ReadOptimizedArray()
	if err != nil {
		return Item{}, true, err
	}
	if !ok {
		return Item{}, false, nil
	}
	return valueItem(Value{detail: DetailArray, bin: data}), true, nil
}

func (c ubjsonCursor) readValue(dvt DetailedValueType) (Value, error) {
	switch dvt {
	case DetailNull:
		return Value{detail: DetailNull}, nil
	case DetailBoolean:
		b, _, err := c.r.ReadBool()
		if err != nil {
			return Value{}, err
		}
		return Value{detail: DetailBoolean, b: b}, nil
	case DetailChar:
		s, _, err := c.r.ReadString()
		if err != nil {
			return Value{}, err
		}
		return Value{detail: DetailChar, s: s}, nil
	case DetailHighPrecisionNumber:
		d, _, err := c.r.ReadDecimal128()
		if err != nil {
			return Value{}, err
		}
		f, _, err := c.r.ReadFloat64()
		if err != nil {
			return Value{}, err
		}
		return Value{detail: DetailHighPrecisionNumber, dec: d, f: f}, nil
	case DetailString:
		s, _, err := c.r.ReadString()
		if err != nil {
			return Value{}, err
		}
		return Value{detail: DetailString, s: s}, nil
	case DetailFloat32, DetailFloat64:
		f, _, err := c.r.ReadFloat64()
		if err != nil {
			return Value{}, err
		}
		return Value{detail: dvt, f: f}, nil
	default:
		if dvt.Coarse() == TypeInteger {
			n, _, err := c.r.ReadInt64()
			if err != nil {
				return Value{}, err
			}
			return Value{detail: dvt, i: n}, nil
		}
		return Value{}, c.r.tok.errorf("invalid value")
	}
}
