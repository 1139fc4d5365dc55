package yson

// ubjsonState tracks where a scope reader is within its container, mirroring
// the state machine the JSON reader uses but kept separate since the two
// wire formats advance through slightly different transitions.
type ubjsonState int

const (
	ubjsStateInitial ubjsonState = iota
	ubjsStateAtStart
	ubjsStateAtKey
	ubjsStateAtValue
	ubjsStateAfterValue
	ubjsStateAtEnd
	ubjsStateAtEndOfFile
)

// ubjsonFrame is the per-scope bookkeeping pushed onto the reader's scope
// stack: which scope reader is active, its traversal state, and (for
// optimized containers) the declared element type and count.
type ubjsonFrame struct {
	state      ubjsonState
	valueType  UBJSONTokenType
	valueCount int64
	valueIndex int64
	scope      ubjsonScopeReader
}

// ubjsonScopeReader advances through one level of UBJSON nesting. Each
// implementation understands the token sequence of exactly one kind of
// scope: the top-level document, a plain array or object, or a
// count/type-optimized array or object.
type ubjsonScopeReader interface {
	nextKey(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error)
	nextValue(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error)
	nextDocument(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error)
	scopeType() byte
}

func isValueToken(tt UBJSONTokenType) bool {
	switch tt {
	case UBJSONNoOp, UBJSONEndObject, UBJSONEndArray:
		return false
	default:
		return true
	}
}

func isTrivialValue(tt UBJSONTokenType) bool {
	switch tt {
	case UBJSONUnknown, UBJSONStartObject, UBJSONEndObject, UBJSONStartArray, UBJSONEndArray:
		return false
	default:
		return true
	}
}

func carriesValue(tt UBJSONTokenType) bool {
	switch tt {
	case UBJSONNull, UBJSONNoOp, UBJSONTrue, UBJSONFalse:
		return false
	default:
		return true
	}
}

// readKey reads one object member name. It returns false, nil at the
// closing '}' rather than an error: that's the normal way an object ends.
func readKey(t *ubjsonTokenizer) (bool, error) {
	if !t.NextKey() {
		if t.Err() != nil {
			return false, t.Err()
		}
		return false, t.errorf("unexpected end of document while reading a key")
	}
	switch t.TokenType() {
	case UBJSONString:
		return true, nil
	case UBJSONEndObject:
		return false, nil
	default:
		return false, t.errorf("expected a key or '}', found %s", t.TokenType())
	}
}

// readStartOfValue reads the first token of a value. It returns false, nil
// at endToken (the scope's closing bracket) rather than an error.
func readStartOfValue(t *ubjsonTokenizer, endToken UBJSONTokenType) (bool, error) {
	if !t.Next(UBJSONUnknown) {
		if t.Err() != nil {
			return false, t.Err()
		}
		return false, t.errorf("unexpected end of document")
	}
	if isValueToken(t.TokenType()) {
		return true, nil
	}
	if t.TokenType() == endToken {
		return false, nil
	}
	return false, t.errorf("unexpected token %s", t.TokenType())
}

// readStartOfOptimizedValue reads one element of an optimized array/object:
// a bare payload if tokenType is declared, otherwise a regular
// marker-prefixed token.
func readStartOfOptimizedValue(t *ubjsonTokenizer, tokenType UBJSONTokenType) (bool, error) {
	if tokenType != UBJSONUnknown {
		if t.Next(tokenType) {
			return true, nil
		}
		if t.Err() != nil {
			return false, t.Err()
		}
		return false, nil
	}
	if t.Next(UBJSONUnknown) {
		if isValueToken(t.TokenType()) {
			return true, nil
		}
		return false, t.errorf("unexpected token %s", t.TokenType())
	}
	if t.Err() != nil {
		return false, t.Err()
	}
	return false, nil
}

func skipKeys(t *ubjsonTokenizer) error {
	count := t.ContentSize()
	for i := int64(0); i < count; i++ {
		if !t.Skip(UBJSONString) {
			return t.errorf("unexpected end of document")
		}
	}
	return nil
}

func skipKeysAndTrivialValues(t *ubjsonTokenizer) error {
	count := t.ContentSize()
	contentType := t.ContentType()
	for i := int64(0); i < count; i++ {
		if !t.Skip(UBJSONString) || !t.Skip(contentType) {
			return t.errorf("unexpected end of document")
		}
	}
	return nil
}

func skipKeysAndComplexValues(t *ubjsonTokenizer) error {
	count := t.ContentSize()
	contentType := t.ContentType()
	for i := int64(0); i < count; i++ {
		if !t.Skip(UBJSONString) || !t.Skip(contentType) {
			return t.errorf("unexpected end of document")
		}
		if err := skipValue(t); err != nil {
			return err
		}
	}
	return nil
}

func skipOptimizedObject(t *ubjsonTokenizer) error {
	switch {
	case !carriesValue(t.ContentType()):
		return skipKeys(t)
	case isTrivialValue(t.ContentType()):
		return skipKeysAndTrivialValues(t)
	default:
		return skipKeysAndComplexValues(t)
	}
}

func skipTrivialValues(t *ubjsonTokenizer) error {
	count := t.ContentSize()
	contentType := t.ContentType()
	for i := int64(0); i < count; i++ {
		if !t.Skip(contentType) {
			return t.errorf("unexpected end of document")
		}
	}
	return nil
}

func skipComplexValues(t *ubjsonTokenizer) error {
	count := t.ContentSize()
	contentType := t.ContentType()
	for i := int64(0); i < count; i++ {
		if !t.Skip(contentType) {
			return t.errorf("unexpected end of document")
		}
		if err := skipValue(t); err != nil {
			return err
		}
	}
	return nil
}

func skipOptimizedArray(t *ubjsonTokenizer) error {
	if !carriesValue(t.ContentType()) {
		return nil
	}
	if isTrivialValue(t.ContentType()) {
		return skipTrivialValues(t)
	}
	return skipComplexValues(t)
}

func skipObject(t *ubjsonTokenizer) error {
	for t.SkipKey() {
		if t.TokenType() == UBJSONEndObject {
			return nil
		}
		if !t.Skip(UBJSONUnknown) {
			if t.Err() != nil {
				return t.Err()
			}
			return t.errorf("unexpected end of document")
		}
		if err := skipValue(t); err != nil {
			return err
		}
	}
	if t.Err() != nil {
		return t.Err()
	}
	return t.errorf("unexpected end of document")
}

func skipArray(t *ubjsonTokenizer) error {
	for t.Skip(UBJSONUnknown) {
		if t.TokenType() == UBJSONEndArray {
			return nil
		}
		if err := skipValue(t); err != nil {
			return err
		}
	}
	if t.Err() != nil {
		return t.Err()
	}
	return t.errorf("unexpected end of document")
}

// skipValue discards the value whose first token has already been read
// into t, recursing into nested containers without materializing anything.
func skipValue(t *ubjsonTokenizer) error {
	switch t.TokenType() {
	case UBJSONStartObject:
		return skipObject(t)
	case UBJSONStartArray:
		return skipArray(t)
	case UBJSONStartOptimizedObject:
		return skipOptimizedObject(t)
	case UBJSONStartOptimizedArray:
		return skipOptimizedArray(t)
	case UBJSONNoOp, UBJSONEndArray, UBJSONEndObject:
		return t.errorf("unexpected token %s", t.TokenType())
	default:
		return nil
	}
}

type ubjsonDocumentReader struct{}

func (ubjsonDocumentReader) scopeType() byte { return 0 }

func (ubjsonDocumentReader) nextKey(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	return false, t.errorf("cannot read a key outside of an object")
}

func (ubjsonDocumentReader) nextValue(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	switch f.state {
	case ubjsStateInitial:
		ok, err := readStartOfValue(t, UBJSONUnknown)
		if err != nil {
			return false, err
		}
		if !ok {
			f.state = ubjsStateAtEndOfFile
			return false, nil
		}
		f.state = ubjsStateAtValue
		return true, nil
	case ubjsStateAtStart:
		f.state = ubjsStateAtValue
		return true, nil
	case ubjsStateAfterValue, ubjsStateAtEnd, ubjsStateAtEndOfFile:
		return false, nil
	case ubjsStateAtValue:
		if err := skipValue(t); err != nil {
			return false, err
		}
		if !t.Next(UBJSONUnknown) {
			if t.Err() != nil {
				return false, t.Err()
			}
			f.state = ubjsStateAtEndOfFile
			return false, nil
		}
		f.state = ubjsStateAtEnd
		return false, nil
	default:
		return false, nil
	}
}

func (ubjsonDocumentReader) nextDocument(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	switch f.state {
	case ubjsStateInitial:
		if !t.Next(UBJSONUnknown) {
			if t.Err() != nil {
				return false, t.Err()
			}
			f.state = ubjsStateAtEndOfFile
			return false, nil
		}
		f.state = ubjsStateAtStart
		return true, nil
	case ubjsStateAtEndOfFile:
		return false, nil
	case ubjsStateAtStart, ubjsStateAtValue:
		if err := skipValue(t); err != nil {
			return false, err
		}
		fallthrough
	case ubjsStateAfterValue:
		if !t.Next(UBJSONUnknown) {
			if t.Err() != nil {
				return false, t.Err()
			}
			f.state = ubjsStateAtEndOfFile
			return false, nil
		}
		fallthrough
	case ubjsStateAtEnd:
		f.state = ubjsStateAtStart
		return true, nil
	default:
		return false, t.errorf("invalid reader state")
	}
}

type ubjsonArrayReader struct{}

func (ubjsonArrayReader) scopeType() byte { return '[' }

func (ubjsonArrayReader) nextKey(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	return false, t.errorf("cannot read a key inside an array")
}

func (ubjsonArrayReader) nextValue(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	switch f.state {
	case ubjsStateAtValue:
		if err := skipValue(t); err != nil {
			return false, err
		}
		fallthrough
	case ubjsStateAtStart, ubjsStateAfterValue:
		ok, err := readStartOfValue(t, UBJSONEndArray)
		if err != nil {
			return false, err
		}
		if ok {
			f.state = ubjsStateAtValue
			return true, nil
		}
		f.state = ubjsStateAtEnd
		return false, nil
	default:
		return false, nil
	}
}

func (ubjsonArrayReader) nextDocument(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	return false, t.errorf("cannot read a document inside an array")
}

type ubjsonObjectReader struct{}

func (ubjsonObjectReader) scopeType() byte { return '{' }

func (ubjsonObjectReader) nextKey(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	switch f.state {
	case ubjsStateAtKey:
		if !t.Next(UBJSONUnknown) {
			if t.Err() != nil {
				return false, t.Err()
			}
			return false, t.errorf("unexpected end of document")
		}
		fallthrough
	case ubjsStateAtValue:
		if err := skipValue(t); err != nil {
			return false, err
		}
		fallthrough
	case ubjsStateAtStart, ubjsStateAfterValue:
		ok, err := readKey(t)
		if err != nil {
			return false, err
		}
		if ok {
			f.state = ubjsStateAtKey
			return true, nil
		}
		f.state = ubjsStateAtEnd
		return false, nil
	default:
		return false, nil
	}
}

func (ubjsonObjectReader) nextValue(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	switch f.state {
	case ubjsStateAtValue:
		if err := skipValue(t); err != nil {
			return false, err
		}
		fallthrough
	case ubjsStateAtStart, ubjsStateAfterValue:
		ok, err := readKey(t)
		if err != nil {
			return false, err
		}
		if !ok {
			f.state = ubjsStateAtEnd
			return false, nil
		}
		fallthrough
	case ubjsStateAtKey:
		ok, err := readStartOfValue(t, UBJSONUnknown)
		if err != nil {
			return false, err
		}
		if ok {
			f.state = ubjsStateAtValue
			return true, nil
		}
		return false, t.errorf("unexpected end of document")
	default:
		return false, nil
	}
}

func (ubjsonObjectReader) nextDocument(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	return false, t.errorf("cannot read a document inside an object")
}

type ubjsonOptimizedArrayReader struct{}

func (ubjsonOptimizedArrayReader) scopeType() byte { return '[' }

func (ubjsonOptimizedArrayReader) nextKey(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	return false, t.errorf("cannot read a key inside an array")
}

func (ubjsonOptimizedArrayReader) nextValue(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	if f.state == ubjsStateAtValue {
		if err := skipValue(t); err != nil {
			return false, err
		}
	}
	if f.valueIndex < f.valueCount {
		f.valueIndex++
		if f.valueType != UBJSONUnknown {
			if t.Next(f.valueType) {
				f.state = ubjsStateAtValue
				return true, nil
			}
			if t.Err() != nil {
				return false, t.Err()
			}
			return false, t.errorf("unexpected end of document")
		}
		if t.Next(UBJSONUnknown) {
			if isValueToken(t.TokenType()) {
				f.state = ubjsStateAtValue
				return true, nil
			}
			return false, t.errorf("unexpected token %s", t.TokenType())
		}
		if t.Err() != nil {
			return false, t.Err()
		}
		return false, t.errorf("unexpected end of document")
	}

	f.state = ubjsStateAtEnd
	return false, nil
}

func (ubjsonOptimizedArrayReader) nextDocument(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	return false, t.errorf("cannot read a document inside an array")
}

type ubjsonOptimizedObjectReader struct{}

func (ubjsonOptimizedObjectReader) scopeType() byte { return '{' }

func (ubjsonOptimizedObjectReader) nextKey(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	switch f.state {
	case ubjsStateAtKey:
		ok, err := readStartOfOptimizedValue(t, f.valueType)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, t.errorf("unexpected end of document")
		}
		fallthrough
	case ubjsStateAtValue:
		if err := skipValue(t); err != nil {
			return false, err
		}
		fallthrough
	case ubjsStateAfterValue, ubjsStateAtStart:
		if f.valueIndex == f.valueCount {
			f.state = ubjsStateAtEnd
			return false, nil
		}
		f.valueIndex++
		ok, err := readKey(t)
		if err != nil {
			return false, err
		}
		if ok {
			f.state = ubjsStateAtKey
			return true, nil
		}
		return false, t.errorf("unexpected end of document")
	default:
		return false, nil
	}
}

func (ubjsonOptimizedObjectReader) nextValue(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	switch f.state {
	case ubjsStateAtValue:
		if err := skipValue(t); err != nil {
			return false, err
		}
		fallthrough
	case ubjsStateAfterValue, ubjsStateAtStart:
		if f.valueIndex == f.valueCount {
			f.state = ubjsStateAtEnd
			return false, nil
		}
		f.valueIndex++
		ok, err := readKey(t)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, t.errorf("unexpected end of document")
		}
		fallthrough
	case ubjsStateAtKey:
		ok, err := readStartOfOptimizedValue(t, f.valueType)
		if err != nil {
			return false, err
		}
		if ok {
			f.state = ubjsStateAtValue
			return true, nil
		}
		return false, t.errorf("unexpected end of document")
	default:
		return false, nil
	}
}

func (ubjsonOptimizedObjectReader) nextDocument(t *ubjsonTokenizer, f *ubjsonFrame) (bool, error) {
	return false, t.errorf("cannot read a document inside an object")
}
