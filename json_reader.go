package yson

// JSONOptions is a bitset of language extensions a JSONReader accepts beyond
// strict JSON.
type JSONOptions uint32

const (
	// StringsAsValues lets readNull/read(bool)/numeric reads accept a
	// STRING token, parsing its contents as if it had been written bare.
	StringsAsValues JSONOptions = 1 << iota
	// ValuesAsStrings lets ReadString accept a VALUE token, returning its
	// raw text.
	ValuesAsStrings
	// EndElementAfterComma allows a trailing comma before a closing ] or }.
	EndElementAfterComma
	// Comments allows // line comments and /* block */ comments.
	Comments
	// EnterNull allows Enter to be called on a null value, immediately
	// producing an empty container that Leave then closes.
	EnterNull
	// ValuesAsKeys allows an unquoted VALUE token that looks like an
	// identifier to serve as an object key.
	ValuesAsKeys
	// ExtendedIntegers allows 0b/0o/0x-prefixed integers and "_" digit
	// separators.
	ExtendedIntegers
	// BlockStrings allows """triple double quoted""" string literals.
	BlockStrings
	// ExtendedFloats allows the bare literals Infinity, -Infinity and NaN.
	ExtendedFloats
)

// jsonState is the reader's position within the document grammar.
type jsonState int

const (
	jsStateInitial jsonState = iota
	jsStateAtStartOfDocument
	jsStateAtValueOfDocument
	jsStateAtEndOfDocument
	jsStateAtEndOfBuffer
	jsStateAtStartOfArray
	jsStateAtValueInArray
	jsStateAfterValueInArray
	jsStateAtCommaInArray
	jsStateAtEndOfArray
	jsStateAtStartOfObject
	jsStateAtKeyInObject
	jsStateAfterKeyInObject
	jsStateAtColonInObject
	jsStateAtValueInObject
	jsStateAfterValueInObject
	jsStateAtCommaInObject
	jsStateAtEndOfObject
	jsStateAtEndOfNull
	jsStateUnrecoverableError
)

// JSONReader is a cursor over a single JSON (or JSON-with-extensions)
// document stream. Methods advance a position, never a materialized tree;
// NextValue/NextKey/Enter/Leave mirror the container-nesting vocabulary of a
// cursor rather than a parser.
type JSONReader struct {
	tok        *jsonTokenizer
	state      jsonState
	stateStack []jsonState
	skipDepth  int
	options    JSONOptions
	fileName   string
}

// NewJSONReader creates a JSONReader that pulls text from tr.
func NewJSONReader(tr TextReader) *JSONReader {
	return &JSONReader{
		tok:   newJSONTokenizer(tr),
		state: jsStateInitial,
	}
}

// SetFileName attaches a name to this reader's error messages.
func (r *JSONReader) SetFileName(name string) *JSONReader {
	r.fileName = name
	return r
}

// SetChunkSize overrides the number of bytes requested per text-reader read.
func (r *JSONReader) SetChunkSize(n int) *JSONReader {
	r.tok.SetChunkSize(n)
	return r
}

// Options returns the currently enabled language extensions.
func (r *JSONReader) Options() JSONOptions {
	return r.options
}

// SetOptions replaces the full set of enabled language extensions.
func (r *JSONReader) SetOptions(opts JSONOptions) *JSONReader {
	r.options = opts
	return r
}

func (r *JSONReader) has(opt JSONOptions) bool {
	return r.options&opt != 0
}

// Position returns the 1-based line and column of the current token.
func (r *JSONReader) Position() (line, col int) {
	return r.tok.Position()
}

func (r *JSONReader) errorf(format string, args ...interface{}) error {
	line, col := r.tok.Position()
	return newJSONError(r.fileName, line, col, format, args...)
}

func isJSONSubElement(t JSONTokenType) bool {
	return t == JSONStartArray || t == JSONStartObject
}

// TokenType exposes the tokenizer's current token kind, for callers
// building a materialized tree over the cursor.
func (r *JSONReader) TokenType() JSONTokenType {
	return r.tok.TokenType()
}

// NextToken advances to the next structurally significant token (skipping
// whitespace/comments), descending into the current value if it is an
// unentered array or object.
func (r *JSONReader) NextToken() (bool, error) {
	if r.skipDepth != 0 && r.state != jsStateUnrecoverableError {
		if err := r.skipElement(); err != nil {
			return false, err
		}
	}
	switch r.state {
	case jsStateAtValueOfDocument, jsStateAtValueInArray, jsStateAtValueInObject:
		if isJSONSubElement(r.tok.TokenType()) {
			if err := r.skipElement(); err != nil {
				return false, err
			}
		}
	}
	return r.nextTokenImpl()
}

// nextTokenImpl drives the tokenizer forward by exactly one
// structurally-significant token, or returns false without consuming
// anything when the current state already forbids further progress (the
// caller is expected to Enter/Leave/stop).
func (r *JSONReader) nextTokenImpl() (bool, error) {
	switch r.state {
	case jsStateUnrecoverableError:
		return false, r.errorf("can't continue reading the current stream")
	case jsStateInitial:
		r.state = jsStateAtStartOfDocument
	case jsStateAtValueInArray, jsStateAtValueInObject:
		if isJSONSubElement(r.tok.TokenType()) {
			return false, nil
		}
	case jsStateAtValueOfDocument:
		if isJSONSubElement(r.tok.TokenType()) {
			return false, nil
		}
		r.state = jsStateAtEndOfDocument
		return false, nil
	case jsStateAtEndOfArray, jsStateAtEndOfObject, jsStateAtEndOfNull,
		jsStateAtEndOfBuffer, jsStateAtEndOfDocument:
		return false, nil
	}

	for {
		if !r.tok.Next() {
			if err := r.tok.Err(); err != nil {
				r.state = jsStateUnrecoverableError
				return false, err
			}
			return r.processEndOfInput()
		}

		switch r.tok.TokenType() {
		case JSONInvalid:
			r.state = jsStateUnrecoverableError
			return false, r.tok.Err()
		case JSONStartArray:
			if err := r.processStartArray(); err != nil {
				return false, err
			}
			return true, nil
		case JSONEndArray:
			if err := r.processEndArray(); err != nil {
				return false, err
			}
			return true, nil
		case JSONStartObject:
			if err := r.processStartObject(); err != nil {
				return false, err
			}
			return true, nil
		case JSONEndObject:
			if err := r.processEndObject(); err != nil {
				return false, err
			}
			return true, nil
		case JSONColon:
			if err := r.processColon(); err != nil {
				return false, err
			}
			return true, nil
		case JSONComma:
			if err := r.processComma(); err != nil {
				return false, err
			}
			return true, nil
		case JSONString:
			if r.tok.IsBlockString() && !r.has(BlockStrings) {
				r.state = jsStateUnrecoverableError
				return false, r.errorf("block strings are not enabled")
			}
			if err := r.processString(); err != nil {
				return false, err
			}
			return true, nil
		case JSONValue:
			if err := r.processValue(); err != nil {
				return false, err
			}
			return true, nil
		case JSONComment, JSONBlockComment:
			if !r.has(Comments) {
				r.state = jsStateUnrecoverableError
				return false, r.errorf("invalid token")
			}
			r.processWhitespace()
		case JSONWhitespace, JSONNewline:
			r.processWhitespace()
		}
	}
}

func (r *JSONReader) processEndOfInput() (bool, error) {
	switch r.state {
	case jsStateAtStartOfDocument, jsStateAtEndOfDocument:
		r.state = jsStateAtEndOfBuffer
		return false, nil
	case jsStateAtEndOfBuffer:
		return false, nil
	default:
		r.state = jsStateUnrecoverableError
		return false, r.errorf("unexpected end of document")
	}
}

// NextKey advances to the next key of the current object, returning false
// once the object has no more members.
func (r *JSONReader) NextKey() (bool, error) {
	if r.skipDepth != 0 && r.state != jsStateUnrecoverableError {
		if err := r.skipElement(); err != nil {
			return false, err
		}
	}
	switch r.state {
	case jsStateAtStartOfObject, jsStateAtKeyInObject, jsStateAfterKeyInObject,
		jsStateAtColonInObject, jsStateAfterValueInObject, jsStateAtCommaInObject:
	case jsStateAtValueInObject:
		if err := r.skipElement(); err != nil {
			return false, err
		}
	case jsStateAtEndOfObject, jsStateAtEndOfNull:
		return false, nil
	default:
		return false, r.errorf("NextKey can only be called inside an object")
	}

	for {
		ok, err := r.nextTokenImpl()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		switch r.state {
		case jsStateAtValueInObject:
			if err := r.skipElement(); err != nil {
				return false, err
			}
		case jsStateAtKeyInObject:
			return true, nil
		case jsStateAfterKeyInObject, jsStateAtColonInObject,
			jsStateAfterValueInObject, jsStateAtCommaInObject:
		default:
			return false, nil
		}
	}
}

// NextValue advances to the next value, whether it's an array element, an
// object member's value, or the single top-level document value.
func (r *JSONReader) NextValue() (bool, error) {
	if r.skipDepth != 0 && r.state != jsStateUnrecoverableError {
		if err := r.skipElement(); err != nil {
			return false, err
		}
	}
	switch r.state {
	case jsStateAtEndOfBuffer, jsStateAtEndOfDocument, jsStateAtEndOfArray,
		jsStateAtEndOfObject, jsStateAtEndOfNull:
		return false, nil
	case jsStateAtValueInObject, jsStateAtValueInArray, jsStateAtValueOfDocument:
		if isJSONSubElement(r.tok.TokenType()) {
			if err := r.skipElement(); err != nil {
				return false, err
			}
		}
	}
	for {
		ok, err := r.nextTokenImpl()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		switch r.state {
		case jsStateAtValueInObject, jsStateAtValueInArray, jsStateAtValueOfDocument:
			return true, nil
		}
	}
}

// NextDocument skips whatever is left of the current top-level document (if
// any) and positions the reader at the start of the next one. It returns
// false once the source is exhausted.
func (r *JSONReader) NextDocument() (bool, error) {
	for r.state != jsStateAtEndOfDocument {
		switch r.state {
		case jsStateAtEndOfBuffer:
			return false, nil
		case jsStateAtEndOfObject, jsStateAtEndOfArray, jsStateAtEndOfNull:
			if err := r.Leave(); err != nil {
				return false, err
			}
		default:
			if _, err := r.NextValue(); err != nil {
				return false, err
			}
		}
	}
	r.state = jsStateAtStartOfDocument
	return true, nil
}

func (r *JSONReader) skipElement() error {
	if r.skipDepth == 0 {
		if !isJSONSubElement(r.tok.TokenType()) {
			return nil
		}
		if err := r.Enter(); err != nil {
			return err
		}
		r.skipDepth = 1
	}
	for r.skipDepth != 0 {
		ok, err := r.nextTokenImpl()
		if err != nil {
			return err
		}
		if !ok {
			switch r.tok.TokenType() {
			case JSONStartArray, JSONStartObject:
				if err := r.Enter(); err != nil {
					return err
				}
				r.skipDepth++
			case JSONEndArray, JSONEndObject:
				if err := r.Leave(); err != nil {
					return err
				}
				r.skipDepth--
			}
		}
	}
	return nil
}

// Enter descends into the array or object at the current position (or, with
// EnterNull set, substitutes an empty container for a null).
func (r *JSONReader) Enter() error {
	var push jsonState
	switch r.state {
	case jsStateAtValueInArray:
		push = jsStateAfterValueInArray
	case jsStateAtValueOfDocument:
		push = jsStateAtEndOfDocument
	case jsStateAtValueInObject:
		push = jsStateAfterValueInObject
	default:
		return r.errorf("there's no array or object to enter")
	}

	switch {
	case r.tok.TokenType() == JSONStartObject:
		r.state = jsStateAtStartOfObject
	case r.tok.TokenType() == JSONStartArray:
		r.state = jsStateAtStartOfArray
	case r.has(EnterNull) && r.isNull():
		r.state = jsStateAtEndOfNull
	default:
		return r.errorf("only arrays and objects can be entered")
	}
	r.stateStack = append(r.stateStack, push)
	return nil
}

// Leave returns to the parent of the current array/object/entered-null,
// consuming any remaining members first.
func (r *JSONReader) Leave() error {
	switch r.state {
	case jsStateInitial, jsStateAtStartOfDocument, jsStateAtValueOfDocument,
		jsStateAtEndOfDocument, jsStateAtEndOfBuffer:
		return r.errorf("Leave wasn't preceded by Enter")
	case jsStateAtEndOfArray, jsStateAtEndOfObject, jsStateAtEndOfNull:
	default:
		for {
			ok, err := r.NextToken()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
		}
	}
	if len(r.stateStack) == 0 {
		return r.errorf("Leave wasn't preceded by Enter")
	}
	n := len(r.stateStack) - 1
	r.state = r.stateStack[n]
	r.stateStack = r.stateStack[:n]
	return nil
}

func (r *JSONReader) processStartArray() error {
	switch r.state {
	case jsStateAtStartOfDocument:
		r.state = jsStateAtValueOfDocument
	case jsStateAtColonInObject:
		r.state = jsStateAtValueInObject
	case jsStateAtStartOfArray, jsStateAtCommaInArray:
		r.state = jsStateAtValueInArray
	default:
		r.state = jsStateUnrecoverableError
		return r.errorf("unexpected '['")
	}
	return nil
}

func (r *JSONReader) processEndArray() error {
	switch r.state {
	case jsStateAtStartOfArray, jsStateAtValueInArray, jsStateAfterValueInArray:
		r.state = jsStateAtEndOfArray
	case jsStateAtCommaInArray:
		r.state = jsStateAtEndOfArray
		if !r.has(EndElementAfterComma) {
			return r.errorf("unexpected ']'")
		}
	default:
		r.state = jsStateUnrecoverableError
		return r.errorf("unexpected ']'")
	}
	return nil
}

func (r *JSONReader) processStartObject() error {
	switch r.state {
	case jsStateAtStartOfDocument:
		r.state = jsStateAtValueOfDocument
	case jsStateAtColonInObject:
		r.state = jsStateAtValueInObject
	case jsStateAtStartOfArray, jsStateAtCommaInArray:
		r.state = jsStateAtValueInArray
	default:
		r.state = jsStateUnrecoverableError
		return r.errorf("unexpected '{'")
	}
	return nil
}

func (r *JSONReader) processEndObject() error {
	switch r.state {
	case jsStateAtStartOfObject, jsStateAtValueInObject, jsStateAfterValueInObject:
		r.state = jsStateAtEndOfObject
	case jsStateAtCommaInObject:
		r.state = jsStateAtEndOfObject
		if !r.has(EndElementAfterComma) {
			return r.errorf("unexpected '}'")
		}
	default:
		r.state = jsStateUnrecoverableError
		return r.errorf("unexpected '}'")
	}
	return nil
}

func (r *JSONReader) processString() error {
	switch r.state {
	case jsStateAtStartOfDocument:
		r.state = jsStateAtValueOfDocument
	case jsStateAtStartOfArray, jsStateAtCommaInArray:
		r.state = jsStateAtValueInArray
	case jsStateAtStartOfObject, jsStateAtCommaInObject:
		r.state = jsStateAtKeyInObject
	case jsStateAtColonInObject:
		r.state = jsStateAtValueInObject
	default:
		r.state = jsStateUnrecoverableError
		return r.errorf("unexpected string")
	}
	return nil
}

func (r *JSONReader) processValue() error {
	switch r.state {
	case jsStateAtStartOfDocument:
		r.state = jsStateAtValueOfDocument
	case jsStateAtStartOfArray, jsStateAtCommaInArray:
		r.state = jsStateAtValueInArray
	case jsStateAtColonInObject:
		r.state = jsStateAtValueInObject
	case jsStateAtValueInObject, jsStateAtValueInArray, jsStateAtStartOfObject,
		jsStateAtCommaInObject:
		r.state = jsStateAtKeyInObject
		if r.has(ValuesAsKeys) && isIdentifierLike(r.tok.TokenView()) {
			return nil
		}
		r.state = jsStateUnrecoverableError
		return r.errorf("unexpected value: %s", r.tok.TokenString())
	default:
		r.state = jsStateUnrecoverableError
		return r.errorf("unexpected value: %s", r.tok.TokenString())
	}
	return nil
}

func (r *JSONReader) processColon() error {
	switch r.state {
	case jsStateAtKeyInObject, jsStateAfterKeyInObject:
		r.state = jsStateAtColonInObject
	default:
		r.state = jsStateUnrecoverableError
		return r.errorf("unexpected colon")
	}
	return nil
}

func (r *JSONReader) processComma() error {
	switch r.state {
	case jsStateAtValueInArray, jsStateAfterValueInArray:
		r.state = jsStateAtCommaInArray
	case jsStateAtValueInObject, jsStateAfterValueInObject:
		r.state = jsStateAtCommaInObject
	default:
		r.state = jsStateUnrecoverableError
		return r.errorf("unexpected comma")
	}
	return nil
}

func (r *JSONReader) processWhitespace() {
	switch r.state {
	case jsStateAtValueInArray:
		r.state = jsStateAfterValueInArray
	case jsStateAtKeyInObject:
		r.state = jsStateAfterKeyInObject
	case jsStateAtValueInObject:
		r.state = jsStateAfterValueInObject
	}
}

func (r *JSONReader) isNull() bool {
	tok, err := r.getValueToken()
	return err == nil && string(tok) == "null"
}

func (r *JSONReader) getValueToken() ([]byte, error) {
	switch r.tok.TokenType() {
	case JSONValue:
		return r.tok.TokenView(), nil
	case JSONString:
		if r.has(StringsAsValues) {
			return r.tok.TokenView(), nil
		}
		return nil, r.errorf("current token is a string, not a value")
	default:
		return nil, r.errorf("current token is not a value")
	}
}

// ValueType classifies the value at the current position.
func (r *JSONReader) ValueType() (ValueType, error) {
	switch r.tok.TokenType() {
	case JSONStartArray:
		return TypeArray, nil
	case JSONStartObject:
		return TypeObject, nil
	case JSONString:
		return TypeString, nil
	case JSONValue:
		vt := GetValueType(r.tok.TokenView())
		return r.classifyExtended(vt)
	}
	return TypeInvalid, r.errorf("current token has no value type")
}

func (r *JSONReader) classifyExtended(vt ValueType) (ValueType, error) {
	switch vt {
	case TypeInteger:
		return TypeInteger, nil
	case TypeFloat:
		if !r.has(ExtendedFloats) && isSpecialFloatLiteral(r.tok.TokenView()) {
			return TypeInvalid, r.errorf("invalid value")
		}
		return TypeFloat, nil
	case TypeInvalid:
		return TypeInvalid, r.errorf("invalid value")
	default:
		return vt, nil
	}
}

func isSpecialFloatLiteral(s []byte) bool {
	switch string(s) {
	case "Infinity", "-Infinity", "NaN":
		return true
	default:
		return false
	}
}

// DetailedValueType classifies the value at the current position with full
// integer-width/precision detail.
func (r *JSONReader) DetailedValueType() (DetailedValueType, error) {
	switch r.tok.TokenType() {
	case JSONStartArray:
		return DetailArray, nil
	case JSONStartObject:
		return DetailObject, nil
	case JSONString:
		return DetailString, nil
	case JSONValue:
		dvt := GetDetailedValueType(r.tok.TokenView())
		if dvt == DetailInvalid {
			return DetailInvalid, r.errorf("invalid value")
		}
		if dvt.Coarse() == TypeFloat && !r.has(ExtendedFloats) &&
			isSpecialFloatLiteral(r.tok.TokenView()) {
			return DetailInvalid, r.errorf("invalid value")
		}
		return dvt, nil
	}
	return DetailInvalid, r.errorf("current token has no value type")
}

// ReadNull reports whether the current value is the null literal.
func (r *JSONReader) ReadNull() (bool, error) {
	tok, err := r.getValueToken()
	if err != nil {
		return false, err
	}
	return string(tok) == "null", nil
}

// ReadBool reads the current value as a boolean.
func (r *JSONReader) ReadBool() (bool, error) {
	tok, err := r.getValueToken()
	if err != nil {
		return false, err
	}
	switch string(tok) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, r.errorf("invalid boolean value")
	}
}

// ReadInt64 reads the current value as a signed 64-bit integer.
func (r *JSONReader) ReadInt64() (int64, error) {
	tok, err := r.getValueToken()
	if err != nil {
		return 0, err
	}
	v, ok := ParseInteger(tok, r.has(ExtendedIntegers))
	if !ok {
		return 0, r.errorf("invalid integer")
	}
	return v, nil
}

// ReadUint64 reads the current value as an unsigned 64-bit integer.
func (r *JSONReader) ReadUint64() (uint64, error) {
	tok, err := r.getValueToken()
	if err != nil {
		return 0, err
	}
	if len(tok) > 0 && tok[0] == '-' {
		return 0, r.errorf("attempt to read a signed integer as an unsigned integer")
	}
	v, ok := ParseUnsignedInteger(tok, r.has(ExtendedIntegers))
	if !ok {
		return 0, r.errorf("invalid integer")
	}
	return v, nil
}

// ReadFloat64 reads the current value as a 64-bit float.
func (r *JSONReader) ReadFloat64() (float64, error) {
	tok, err := r.getValueToken()
	if err != nil {
		return 0, err
	}
	if !r.has(ExtendedFloats) && isSpecialFloatLiteral(tok) {
		return 0, r.errorf("invalid floating point value")
	}
	v, ok := ParseFloat(tok)
	if !ok {
		return 0, r.errorf("invalid floating point value")
	}
	return v, nil
}

// ReadString reads the current value as a string. With ValuesAsStrings set,
// a bare VALUE token is also accepted, returning its raw text.
func (r *JSONReader) ReadString() (string, error) {
	switch r.tok.TokenType() {
	case JSONString:
		s, err := unescapeJSONString(r.tok.TokenView())
		if err != nil {
			return "", r.errorf("%s", err.Error())
		}
		return s, nil
	case JSONValue:
		if r.has(ValuesAsStrings) {
			return r.tok.TokenString(), nil
		}
	}
	return "", r.errorf("current token is not a string")
}

// ReadBase64 reads the current string value as Base64-encoded binary.
func (r *JSONReader) ReadBase64() ([]byte, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	data, err := DecodeBase64([]byte(s))
	if err != nil {
		return nil, r.errorf("%s", err.Error())
	}
	return data, nil
}
