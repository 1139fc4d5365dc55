package yson

import (
	"encoding/binary"
	"io"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UBJSONOptions is a bitset of UBJSONReader behaviors that deviate from the
// bare wire format.
type UBJSONOptions uint32

const (
	// ExpandOptimizedByteArrays makes an optimized int8/uint8/char array
	// materialize (via the tree API) as a scalar array like any other
	// array, rather than as a single binary blob. It is on by default.
	ExpandOptimizedByteArrays UBJSONOptions = 1 << iota
)

type ubjsonScope struct {
	reader ubjsonScopeReader
	frame  ubjsonFrame
}

// UBJSONReader reads UBJSON tokens with the same enter/leave/next-value
// cursor shape as JSONReader, dispatching to one of five scope readers
// depending on the kind of container it is currently inside.
type UBJSONReader struct {
	tok      *ubjsonTokenizer
	scopes   []ubjsonScope
	options  UBJSONOptions
	fileName string
}

// NewUBJSONReader creates a reader positioned before the top-level document.
func NewUBJSONReader(r io.Reader) *UBJSONReader {
	ur := &UBJSONReader{
		tok:     newUBJSONTokenizer(r),
		options: ExpandOptimizedByteArrays,
	}
	ur.scopes = []ubjsonScope{{reader: ubjsonDocumentReader{}}}
	return ur
}

// SetFileName attaches a name to this reader's error messages.
func (r *UBJSONReader) SetFileName(name string) {
	r.fileName = name
	r.tok.SetFileName(name)
}

func (r *UBJSONReader) Options() UBJSONOptions     { return r.options }
func (r *UBJSONReader) SetOptions(o UBJSONOptions) { r.options = o }
func (r *UBJSONReader) has(o UBJSONOptions) bool   { return r.options&o != 0 }

// Position returns the current byte offset into the stream.
func (r *UBJSONReader) Position() int64 {
	return r.tok.Position()
}

func (r *UBJSONReader) current() *ubjsonScope {
	return &r.scopes[len(r.scopes)-1]
}

// NextValue advances to the next value in the current scope (array element,
// object member value, or the top-level document value).
func (r *UBJSONReader) NextValue() (bool, error) {
	s := r.current()
	return s.reader.nextValue(r.tok, &s.frame)
}

// NextKey advances to the next object member name in the current scope.
func (r *UBJSONReader) NextKey() (bool, error) {
	s := r.current()
	return s.reader.nextKey(r.tok, &s.frame)
}

// NextDocument advances to the next top-level document in a concatenated
// stream of UBJSON documents.
func (r *UBJSONReader) NextDocument() (bool, error) {
	s := r.current()
	return s.reader.nextDocument(r.tok, &s.frame)
}

func makeOptimizedFrame(t *ubjsonTokenizer) ubjsonFrame {
	return ubjsonFrame{
		state:      ubjsStateAtStart,
		valueType:  t.ContentType(),
		valueCount: t.ContentSize(),
	}
}

// Enter descends into the array or object the cursor is currently
// positioned on.
func (r *UBJSONReader) Enter() error {
	s := r.current()
	if s.frame.state != ubjsStateAtValue {
		return r.tok.errorf("select a value before calling Enter")
	}
	switch r.tok.TokenType() {
	case UBJSONStartObject:
		r.scopes = append(r.scopes, ubjsonScope{
			reader: ubjsonObjectReader{},
			frame:  ubjsonFrame{state: ubjsStateAtStart},
		})
	case UBJSONStartArray:
		r.scopes = append(r.scopes, ubjsonScope{
			reader: ubjsonArrayReader{},
			frame:  ubjsonFrame{state: ubjsStateAtStart},
		})
	case UBJSONStartOptimizedArray:
		r.scopes = append(r.scopes, ubjsonScope{
			reader: ubjsonOptimizedArrayReader{},
			frame:  makeOptimizedFrame(r.tok),
		})
	case UBJSONStartOptimizedObject:
		r.scopes = append(r.scopes, ubjsonScope{
			reader: ubjsonOptimizedObjectReader{},
			frame:  makeOptimizedFrame(r.tok),
		})
	default:
		return r.tok.errorf("there is no object or array to enter")
	}
	return nil
}

// Leave returns to the parent scope, discarding any remaining unread
// elements of the current container.
func (r *UBJSONReader) Leave() error {
	if len(r.scopes) == 1 {
		return r.tok.errorf("cannot call Leave outside of an array or object")
	}
	s := r.current()
	if s.frame.state != ubjsStateAtEnd {
		for {
			ok, err := s.reader.nextValue(r.tok, &s.frame)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
	r.current().frame.state = ubjsStateAfterValue
	return nil
}

func (r *UBJSONReader) assertKeyOrValue() error {
	st := r.current().frame.state
	if st == ubjsStateAtKey || st == ubjsStateAtValue {
		return nil
	}
	return r.tok.errorf("current token is not a key or a value")
}

// ValueType classifies the current token without inspecting string payloads.
func (r *UBJSONReader) ValueType() (ValueType, error) {
	return r.valueType(false)
}

// ValueTypeAnalyzeStrings classifies the current token, additionally
// sniffing a STRING token's payload the way the JSON reader classifies a
// bare VALUE token.
func (r *UBJSONReader) ValueTypeAnalyzeStrings() (ValueType, error) {
	return r.valueType(true)
}

func (r *UBJSONReader) valueType(analyzeStrings bool) (ValueType, error) {
	if err := r.assertKeyOrValue(); err != nil {
		return TypeInvalid, err
	}
	switch r.tok.TokenType() {
	case UBJSONUnknown:
		return TypeUnknown, nil
	case UBJSONNull:
		return TypeNull, nil
	case UBJSONTrue, UBJSONFalse:
		return TypeBoolean, nil
	case UBJSONInt8, UBJSONUint8, UBJSONInt16, UBJSONInt32, UBJSONInt64, UBJSONChar:
		return TypeInteger, nil
	case UBJSONFloat32, UBJSONFloat64, UBJSONHighPrecision:
		return TypeFloat, nil
	case UBJSONString:
		if analyzeStrings {
			if vt := GetValueType(r.tok.Payload()); vt != TypeInvalid {
				return vt, nil
			}
		}
		return TypeString, nil
	case UBJSONStartObject, UBJSONStartOptimizedObject:
		return TypeObject, nil
	case UBJSONStartArray, UBJSONStartOptimizedArray:
		return TypeArray, nil
	default:
		return TypeInvalid, r.tok.errorf("invalid token")
	}
}

// DetailedValueType classifies the current token with integer-width detail.
func (r *UBJSONReader) DetailedValueType() (DetailedValueType, error) {
	return r.detailedValueType(false)
}

// DetailedValueTypeAnalyzeStrings is DetailedValueType with string-payload
// sniffing enabled, mirroring ValueTypeAnalyzeStrings.
func (r *UBJSONReader) DetailedValueTypeAnalyzeStrings() (DetailedValueType, error) {
	return r.detailedValueType(true)
}

func (r *UBJSONReader) detailedValueType(analyzeStrings bool) (DetailedValueType, error) {
	if err := r.assertKeyOrValue(); err != nil {
		return DetailInvalid, err
	}
	switch r.tok.TokenType() {
	case UBJSONUnknown:
		return DetailUnknown, nil
	case UBJSONNull:
		return DetailNull, nil
	case UBJSONTrue, UBJSONFalse:
		return DetailBoolean, nil
	case UBJSONInt8:
		return DetailUint7, nil
	case UBJSONUint8:
		return DetailUint8, nil
	case UBJSONInt16:
		return DetailUint15, nil
	case UBJSONInt32:
		return DetailUint31, nil
	case UBJSONInt64:
		return DetailUint63, nil
	case UBJSONChar:
		return DetailChar, nil
	case UBJSONFloat32:
		return DetailFloat32, nil
	case UBJSONFloat64:
		return DetailFloat64, nil
	case UBJSONHighPrecision:
		return DetailHighPrecisionNumber, nil
	case UBJSONString:
		if analyzeStrings {
			if dvt := GetDetailedValueType(r.tok.Payload()); dvt != DetailInvalid {
				return dvt, nil
			}
		}
		return DetailString, nil
	case UBJSONStartObject, UBJSONStartOptimizedObject:
		return DetailObject, nil
	case UBJSONStartArray, UBJSONStartOptimizedArray:
		return DetailArray, nil
	default:
		return DetailInvalid, r.tok.errorf("invalid token")
	}
}

// IsOptimizedArray reports whether the value the cursor is about to enter is
// a count/type-optimized array.
func (r *UBJSONReader) IsOptimizedArray() bool {
	st := r.current().frame.state
	return st == ubjsStateAtValue && r.tok.TokenType() == UBJSONStartOptimizedArray
}

// OptimizedArrayProperties returns the declared element count and type of
// the optimized array IsOptimizedArray reports true for.
func (r *UBJSONReader) OptimizedArrayProperties() (int64, DetailedValueType) {
	if !r.IsOptimizedArray() {
		return 0, DetailUnknown
	}
	size := r.tok.ContentSize()
	switch r.tok.ContentType() {
	case UBJSONNull:
		return size, DetailNull
	case UBJSONTrue, UBJSONFalse:
		return size, DetailBoolean
	case UBJSONInt8:
		return size, DetailUint7
	case UBJSONUint8:
		return size, DetailUint8
	case UBJSONInt16:
		return size, DetailUint15
	case UBJSONInt32:
		return size, DetailUint31
	case UBJSONInt64:
		return size, DetailUint63
	case UBJSONChar:
		return size, DetailChar
	case UBJSONFloat32:
		return size, DetailFloat32
	case UBJSONFloat64:
		return size, DetailFloat64
	case UBJSONHighPrecision:
		return size, DetailHighPrecisionNumber
	case UBJSONString:
		return size, DetailString
	case UBJSONStartObject:
		return size, DetailObject
	case UBJSONStartArray:
		return size, DetailArray
	default:
		return size, DetailUnknown
	}
}

// ReadNull reports whether the current value is UBJSON's null marker.
func (r *UBJSONReader) ReadNull() (bool, error) {
	if err := r.assertKeyOrValue(); err != nil {
		return false, err
	}
	return r.tok.TokenType() == UBJSONNull, nil
}

// ReadBool reads a TRUE/FALSE token.
func (r *UBJSONReader) ReadBool() (bool, bool, error) {
	if err := r.assertKeyOrValue(); err != nil {
		return false, false, err
	}
	switch r.tok.TokenType() {
	case UBJSONTrue:
		return true, true, nil
	case UBJSONFalse:
		return false, true, nil
	default:
		return false, false, nil
	}
}

// ReadInt64 reads any integer or char token as a signed 64-bit value.
func (r *UBJSONReader) ReadInt64() (int64, bool, error) {
	if err := r.assertKeyOrValue(); err != nil {
		return 0, false, err
	}
	p := r.tok.Payload()
	switch r.tok.TokenType() {
	case UBJSONInt8:
		return int64(int8(p[0])), true, nil
	case UBJSONUint8:
		return int64(p[0]), true, nil
	case UBJSONChar:
		return int64(p[0]), true, nil
	case UBJSONInt16:
		return int64(int16(binary.BigEndian.Uint16(p))), true, nil
	case UBJSONInt32:
		return int64(int32(binary.BigEndian.Uint32(p))), true, nil
	case UBJSONInt64:
		return int64(binary.BigEndian.Uint64(p)), true, nil
	default:
		return 0, false, nil
	}
}

// ReadFloat64 reads any numeric or high-precision token as a float64.
func (r *UBJSONReader) ReadFloat64() (float64, bool, error) {
	if err := r.assertKeyOrValue(); err != nil {
		return 0, false, err
	}
	p := r.tok.Payload()
	switch r.tok.TokenType() {
	case UBJSONInt8, UBJSONUint8, UBJSONInt16, UBJSONInt32, UBJSONInt64, UBJSONChar:
		n, _, err := r.ReadInt64()
		return float64(n), err == nil, err
	case UBJSONFloat32:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(p))), true, nil
	case UBJSONFloat64:
		return math.Float64frombits(binary.BigEndian.Uint64(p)), true, nil
	case UBJSONHighPrecision:
		f, ok := ParseFloat(p)
		return f, ok, nil
	default:
		return 0, false, nil
	}
}

// ReadDecimal128 reads a high-precision-number token as a BSON Decimal128,
// preserving its exact textual precision rather than rounding to float64.
func (r *UBJSONReader) ReadDecimal128() (primitive.Decimal128, bool, error) {
	if err := r.assertKeyOrValue(); err != nil {
		return primitive.Decimal128{}, false, err
	}
	if r.tok.TokenType() != UBJSONHighPrecision {
		return primitive.Decimal128{}, false, nil
	}
	d, err := primitive.ParseDecimal128(string(r.tok.Payload()))
	if err != nil {
		return primitive.Decimal128{}, false, r.tok.errorf("invalid high-precision number: %v", err)
	}
	return d, true, nil
}

// ReadString reads a STRING, HIGH_PRECISION, or CHAR token's payload as
// text.
func (r *UBJSONReader) ReadString() (string, bool, error) {
	if err := r.assertKeyOrValue(); err != nil {
		return "", false, err
	}
	switch r.tok.TokenType() {
	case UBJSONString, UBJSONHighPrecision, UBJSONChar:
		return string(r.tok.Payload()), true, nil
	default:
		return "", false, nil
	}
}

// ReadBase64 decodes a STRING token's payload as base64.
func (r *UBJSONReader) ReadBase64() ([]byte, bool, error) {
	if err := r.assertKeyOrValue(); err != nil {
		return nil, false, err
	}
	if r.tok.TokenType() != UBJSONString {
		return nil, false, nil
	}
	data, err := DecodeBase64(r.tok.Payload())
	if err != nil {
		return nil, false, r.tok.errorf("invalid base64: %v", err)
	}
	return data, true, nil
}

// ReadKeyName returns the current object member name.
func (r *UBJSONReader) ReadKeyName() (string, error) {
	st := r.current().frame.state
	if st != ubjsStateAtKey {
		return "", r.tok.errorf("current token is not a key")
	}
	return string(r.tok.Payload()), nil
}

// ReadOptimizedArray reads the declared-type payload of an optimized array
// the cursor has not yet entered, as a contiguous run of big-endian bytes.
// It is the bulk fast path skipOptimizedArray's tree-building counterpart
// uses for binary blobs; it leaves the cursor positioned after the array.
func (r *UBJSONReader) ReadOptimizedArray() (data []byte, elemType UBJSONTokenType, count int64, ok bool, err error) {
	if !r.IsOptimizedArray() {
		return nil, UBJSONUnknown, 0, false, nil
	}
	elemType = r.tok.ContentType()
	count = r.tok.ContentSize()
	if !carriesValue(elemType) {
		return nil, elemType, count, true, nil
	}
	data, readOk := r.tok.ReadBulk(int(count), elemType)
	if !readOk {
		if r.tok.Err() != nil {
			return nil, elemType, count, false, r.tok.Err()
		}
		return nil, elemType, count, false, r.tok.errorf("unexpected end of document")
	}
	// The payload is now fully consumed from the tokenizer; the owning
	// scope's next NextValue call must move straight to the following
	// element instead of re-skipping this one.
	s := r.current()
	s.frame.state = ubjsStateAfterValue
	return data, elemType, count, true, nil
}
