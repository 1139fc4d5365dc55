package yson

import (
	"bufio"
	"encoding/binary"
	"io"
)

// fixedPayloadSize is the number of payload bytes that follow each
// fixed-size UBJSON type marker.
var fixedPayloadSize = map[byte]int{
	'i': 1, 'U': 1, 'I': 2, 'l': 4, 'L': 8, 'd': 4, 'D': 8, 'C': 1,
}

func ubjsonElemSize(t UBJSONTokenType) int {
	switch t {
	case UBJSONInt8, UBJSONUint8, UBJSONChar:
		return 1
	case UBJSONInt16:
		return 2
	case UBJSONInt32, UBJSONFloat32:
		return 4
	case UBJSONInt64, UBJSONFloat64:
		return 8
	default:
		return 0
	}
}

// ubjsonTokenizer reads one UBJSON token at a time from a byte stream,
// tracking the byte offset for error reporting. Unlike the JSON tokenizer,
// it reads binary data directly through a bufio.Reader rather than through
// a TextReader: there is no encoding to transcode.
type ubjsonTokenizer struct {
	r        *bufio.Reader
	off      int64
	fileName string

	tokType UBJSONTokenType
	payload []byte

	contentType UBJSONTokenType
	contentSize int64

	err error
}

func newUBJSONTokenizer(r io.Reader) *ubjsonTokenizer {
	return &ubjsonTokenizer{r: bufio.NewReaderSize(r, builtinDefaultChunkSize)}
}

// SetFileName attaches a name to this tokenizer's error messages.
func (t *ubjsonTokenizer) SetFileName(name string) {
	t.fileName = name
}

// Position returns the current byte offset into the stream.
func (t *ubjsonTokenizer) Position() int64 {
	return t.off
}

// Err returns the reason the last Next/Skip call failed, if any.
func (t *ubjsonTokenizer) Err() error {
	return t.err
}

func (t *ubjsonTokenizer) errorf(format string, args ...interface{}) error {
	return newUBJSONError(t.fileName, t.off, format, args...)
}

// TokenType returns the kind of the current token.
func (t *ubjsonTokenizer) TokenType() UBJSONTokenType {
	return t.tokType
}

// Payload returns the raw payload bytes of the current scalar token: the
// big-endian bytes of a fixed-size numeric token, or the UTF-8 bytes of a
// string/high-precision-number/char token.
func (t *ubjsonTokenizer) Payload() []byte {
	return t.payload
}

// ContentType and ContentSize describe an optimized container's declared
// element type (UBJSONUnknown if not declared) and element/pair count.
func (t *ubjsonTokenizer) ContentType() UBJSONTokenType {
	return t.contentType
}

func (t *ubjsonTokenizer) ContentSize() int64 {
	return t.contentSize
}

func (t *ubjsonTokenizer) readByte() (byte, error) {
	b, err := t.r.ReadByte()
	if err == nil {
		t.off++
	}
	return b, err
}

func (t *ubjsonTokenizer) peekByte() (byte, error) {
	b, err := t.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (t *ubjsonTokenizer) consumeByte() {
	_, _ = t.r.Discard(1)
	t.off++
}

func (t *ubjsonTokenizer) readN(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(t.r, buf)
	t.off += int64(read)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Next reads the next token. With want == UBJSONUnknown it reads a regular
// marker-prefixed token; otherwise it reads a bare payload of the given
// type directly, without a marker byte, as optimized-array/object elements
// of a declared homogeneous type require. It returns false at a clean end
// of input (Err returns nil) or after recording a scan error (Err returns
// non-nil).
func (t *ubjsonTokenizer) Next(want UBJSONTokenType) bool {
	if want != UBJSONUnknown {
		return t.readPayloadOnly(want)
	}
	b, err := t.readByte()
	if err != nil {
		return false
	}
	return t.dispatch(b)
}

// NextKey reads an object member name: a bare length-prefixed string with
// no leading 'S' marker, or the '}' that ends the object.
func (t *ubjsonTokenizer) NextKey() bool {
	b, err := t.peekByte()
	if err != nil {
		return false
	}
	if b == '}' {
		t.consumeByte()
		t.tokType = UBJSONEndObject
		return true
	}
	return t.readLengthPrefixed(0, UBJSONString)
}

// Skip behaves exactly like Next, for callers that want to discard a token
// without inspecting it.
func (t *ubjsonTokenizer) Skip(want UBJSONTokenType) bool {
	return t.Next(want)
}

// SkipKey behaves exactly like NextKey, for callers that want to discard an
// object member name without inspecting it.
func (t *ubjsonTokenizer) SkipKey() bool {
	return t.NextKey()
}

// ReadBulk reads n consecutive fixed-size elements of the given tag as a
// single contiguous run of big-endian bytes, for optimized numeric arrays.
func (t *ubjsonTokenizer) ReadBulk(n int, tag UBJSONTokenType) ([]byte, bool) {
	size := ubjsonElemSize(tag)
	if size == 0 {
		return nil, false
	}
	buf, err := t.readN(n * size)
	if err != nil {
		t.err = t.errorf("premature end of input")
		return nil, false
	}
	return buf, true
}

func (t *ubjsonTokenizer) readPayloadOnly(want UBJSONTokenType) bool {
	switch want {
	case UBJSONNull, UBJSONNoOp, UBJSONTrue, UBJSONFalse:
		t.tokType = want
		return true
	case UBJSONInt8, UBJSONUint8, UBJSONInt16, UBJSONInt32, UBJSONInt64,
		UBJSONFloat32, UBJSONFloat64, UBJSONChar:
		n := ubjsonElemSize(want)
		p, err := t.readN(n)
		if err != nil {
			t.err = t.errorf("premature end of input")
			return false
		}
		t.payload = p
		t.tokType = want
		return true
	case UBJSONString, UBJSONHighPrecision:
		return t.readLengthPrefixed(0, want)
	default:
		t.err = t.errorf("unsupported optimized element type")
		return false
	}
}

func (t *ubjsonTokenizer) dispatch(b byte) bool {
	switch b {
	case 'Z', 'N', 'T', 'F':
		t.tokType = ubjsonTagByte[b]
		return true
	case 'i', 'U', 'I', 'l', 'L', 'd', 'D', 'C':
		n := fixedPayloadSize[b]
		p, err := t.readN(n)
		if err != nil {
			t.err = t.errorf("premature end of input")
			return false
		}
		t.payload = p
		t.tokType = ubjsonTagByte[b]
		return true
	case 'H':
		return t.readLengthPrefixed(b, UBJSONHighPrecision)
	case 'S':
		return t.readLengthPrefixed(b, UBJSONString)
	case '[':
		return t.readContainerStart(']', UBJSONStartArray, UBJSONStartOptimizedArray)
	case ']':
		t.tokType = UBJSONEndArray
		return true
	case '{':
		return t.readContainerStart('}', UBJSONStartObject, UBJSONStartOptimizedObject)
	case '}':
		t.tokType = UBJSONEndObject
		return true
	default:
		t.err = t.errorf("unrecognized type marker %q", b)
		return false
	}
}

func (t *ubjsonTokenizer) readLengthPrefixed(marker byte, kind UBJSONTokenType) bool {
	n, ok := t.readIntToken()
	if !ok {
		return false
	}
	if n < 0 {
		t.err = t.errorf("negative length prefix")
		return false
	}
	p, err := t.readN(int(n))
	if err != nil {
		t.err = t.errorf("premature end of input")
		return false
	}
	t.payload = p
	t.tokType = kind
	return true
}

// readIntToken reads one marker-prefixed integer token (used for length
// prefixes and element counts) and returns its value.
func (t *ubjsonTokenizer) readIntToken() (int64, bool) {
	b, err := t.readByte()
	if err != nil {
		t.err = t.errorf("premature end of input")
		return 0, false
	}
	n, ok := fixedPayloadSize[b]
	if !ok || (b != 'i' && b != 'U' && b != 'I' && b != 'l' && b != 'L') {
		t.err = t.errorf("expected an integer token, found %q", b)
		return 0, false
	}
	p, err := t.readN(n)
	if err != nil {
		t.err = t.errorf("premature end of input")
		return 0, false
	}
	switch b {
	case 'i':
		return int64(int8(p[0])), true
	case 'U':
		return int64(p[0]), true
	case 'I':
		return int64(int16(binary.BigEndian.Uint16(p))), true
	case 'l':
		return int64(int32(binary.BigEndian.Uint32(p))), true
	default: // 'L'
		return int64(binary.BigEndian.Uint64(p)), true
	}
}

func (t *ubjsonTokenizer) readContainerStart(end byte, plain, optimized UBJSONTokenType) bool {
	t.contentType = UBJSONUnknown
	t.contentSize = 0

	peek, err := t.peekByte()
	if err != nil {
		t.tokType = plain
		return true
	}

	if peek == '$' {
		t.consumeByte()
		marker, err := t.readByte()
		if err != nil {
			t.err = t.errorf("premature end of input")
			return false
		}
		ct, ok := ubjsonTagByte[marker]
		if !ok {
			t.err = t.errorf("invalid optimized element type %q", marker)
			return false
		}
		t.contentType = ct
		hash, err := t.readByte()
		if err != nil || hash != '#' {
			t.err = t.errorf("an optimized container's declared type must be followed by a declared count")
			return false
		}
		n, ok := t.readIntToken()
		if !ok {
			return false
		}
		if n < 0 {
			t.err = t.errorf("negative element count")
			return false
		}
		t.contentSize = n
		t.tokType = optimized
		return true
	}

	if peek == '#' {
		t.consumeByte()
		n, ok := t.readIntToken()
		if !ok {
			return false
		}
		if n < 0 {
			t.err = t.errorf("negative element count")
			return false
		}
		t.contentSize = n
		t.tokType = optimized
		return true
	}

	_ = end
	t.tokType = plain
	return true
}
