package yson

// classify.go implements the coarse and detailed value-type classifiers of
// spec.md §4.6. Both scanners accept the same literal grammar (optional
// sign, optional base prefix, digits with "_" separators, optional
// fraction/exponent, or one of true/false/null/Infinity/NaN); the detailed
// classifier additionally narrows integers to the smallest width category
// that contains them by comparing digit runs against fixed threshold
// tables, one per base.

// GetValueType scans s and classifies it as INTEGER, FLOAT, STRING-adjacent
// BOOLEAN/NULL_VALUE, or INVALID. It does not accept quoted strings; callers
// that already know a token is a quoted JSON string should classify it as
// TypeString directly.
func GetValueType(s []byte) ValueType {
	if len(s) == 0 {
		return TypeInvalid
	}
	i := 0
	assumed := TypeUnknown
	if s[i] == '-' || s[i] == '+' {
		i++
		if i == len(s) {
			return TypeInvalid
		}
		assumed = TypeInteger
	}

	if s[i] == '0' {
		i++
		if i == len(s) {
			return TypeInteger
		}
		switch s[i] {
		case 'b', 'B':
			return scanBaseDigits(s[i+1:], isBinaryDigit)
		case 'o', 'O':
			return scanBaseDigits(s[i+1:], isOctalDigit)
		case 'x', 'X':
			return scanBaseDigits(s[i+1:], isHexDigit)
		case '.', 'e', 'E':
			return scanFloatTail(s[i:])
		default:
			return scanNumber(s[i:])
		}
	} else if isDigit(s[i]) {
		return scanNumber(s[i:])
	}

	if string(s[i:]) == "Infinity" {
		return TypeFloat
	}
	if string(s) == "NaN" {
		return TypeFloat
	}
	if assumed != TypeUnknown {
		return TypeInvalid
	}

	switch string(s) {
	case "true", "false":
		return TypeBoolean
	case "null":
		return TypeNull
	}
	return TypeInvalid
}

func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }
func isOctalDigit(c byte) bool  { return c >= '0' && c <= '7' }
func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func scanBaseDigits(s []byte, isBaseDigit func(byte) bool) ValueType {
	if len(s) == 0 {
		return TypeInvalid
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isBaseDigit(c) {
			continue
		}
		if isLegalUnderscore(s, i) {
			continue
		}
		return TypeInvalid
	}
	return TypeInteger
}

func scanNumber(s []byte) ValueType {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDigit(c) {
			continue
		}
		if isLegalUnderscore(s, i) {
			continue
		}
		if (c == '.' || c == 'e' || c == 'E') && i != 0 && s[i-1] != '_' {
			return scanFloatTail(s[i:])
		}
		return TypeInvalid
	}
	return TypeInteger
}

func scanFloatTail(s []byte) ValueType {
	if s[0] == '.' {
		i := 1
		for ; i < len(s); i++ {
			c := s[i]
			if isDigit(c) {
				continue
			}
			if s[i-1] == '_' {
				return TypeInvalid
			}
			if c == '_' && i > 1 && i < len(s)-1 {
				continue
			}
			if c == 'e' || c == 'E' {
				s = s[i:]
				break
			}
			return TypeInvalid
		}
		if s[0] == '.' {
			return TypeFloat
		}
	}
	if !scanExponent(s) {
		return TypeInvalid
	}
	return TypeFloat
}

// scanExponent validates s as "(e|E)[+-]?digits(_digits)*" in its entirety.
func scanExponent(s []byte) bool {
	if len(s) == 0 || (s[0] != 'e' && s[0] != 'E') {
		return false
	}
	if len(s) == 1 {
		return false
	}
	if s[1] != '+' && s[1] != '-' {
		s = s[1:]
	} else {
		if len(s) == 2 {
			return false
		}
		s = s[2:]
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDigit(c) {
			continue
		}
		if isLegalUnderscore(s, i) {
			continue
		}
		return false
	}
	return true
}

func isLegalUnderscore(s []byte, i int) bool {
	return s[i] == '_' && i > 0 && i < len(s)-1 && s[i-1] != '_'
}

// GetDetailedValueType is GetValueType's fine-grained counterpart: integers
// are narrowed to the smallest UINT_k/SINT_k category that contains them,
// oversized integers become BIG_INT, and numbers with a fraction or
// exponent are always FLOAT_64 (see DESIGN.md's Open Questions entry on the
// UBJSON "H" token for why no separate HIGH_PRECISION_NUMBER path exists
// here; that classification is produced directly by the UBJSON reader).
func GetDetailedValueType(s []byte) DetailedValueType {
	if len(s) == 0 {
		return DetailInvalid
	}
	i := 0
	assumed := DetailUnknown
	negative := false
	if s[i] == '-' || s[i] == '+' {
		negative = s[i] == '-'
		i++
		if i == len(s) {
			return DetailInvalid
		}
		assumed = DetailBigInt
	}

	if s[i] == '0' {
		i++
		if i == len(s) {
			return DetailUint7
		}
		switch s[i] {
		case 'b', 'B':
			return scanBasePow2Detailed(s[i+1:], isBinaryDigit, negative, binaryThresholds(negative))
		case 'o', 'O':
			return scanBasePow2Detailed(s[i+1:], isOctalDigit, negative, octalThresholds(negative))
		case 'x', 'X':
			return scanBasePow2Detailed(s[i+1:], isHexDigit, negative, hexThresholds(negative))
		case '.', 'e', 'E':
			return detailedFloatTail(s[i:])
		default:
			return scanDecimalDetailed(s[i:], negative)
		}
	} else if isDigit(s[i]) {
		return scanDecimalDetailed(s[i:], negative)
	}

	if string(s[i:]) == "Infinity" {
		return DetailFloat64
	}
	if string(s) == "NaN" {
		return DetailFloat64
	}
	if assumed != DetailUnknown {
		return DetailInvalid
	}

	switch string(s) {
	case "true", "false":
		return DetailBoolean
	case "null":
		return DetailNull
	}
	return DetailInvalid
}

func detailedFloatTail(s []byte) DetailedValueType {
	if scanFloatTail(s) == TypeFloat {
		return DetailFloat64
	}
	return DetailInvalid
}

func scanDecimalDetailed(s []byte, negative bool) DetailedValueType {
	s = skipLeadingZeros(s)
	digitCount := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDigit(c) {
			digitCount++
			continue
		}
		if isLegalUnderscore(s, i) {
			continue
		}
		if (c == '.' || c == 'e' || c == 'E') && i != 0 && s[i-1] != '_' {
			return detailedFloatTail(s[i:])
		}
		return DetailInvalid
	}
	if digitCount == 0 {
		return DetailUint7
	}
	thresholds := positiveDecimalThresholds
	if negative {
		thresholds = negativeDecimalThresholds
	}
	return decimalThresholdLookup(s, digitCount, thresholds)
}

func isAllZeros(s []byte) bool {
	for _, c := range s {
		if c != '0' && c != '_' {
			return false
		}
	}
	return true
}

func skipLeadingZeros(s []byte) []byte {
	for i := 0; i < len(s); i++ {
		if s[i] == '0' {
			continue
		}
		if isLegalUnderscore(s, i) {
			continue
		}
		return s[i:]
	}
	return nil
}

type decimalThreshold struct {
	digits string
	typ    DetailedValueType
}

var positiveDecimalThresholds = []decimalThreshold{
	{"127", DetailUint7},
	{"255", DetailUint8},
	{"32767", DetailUint15},
	{"65535", DetailUint16},
	{"2147483647", DetailUint31},
	{"4294967295", DetailUint32},
	{"9223372036854775807", DetailUint63},
	{"18446744073709551615", DetailUint64},
}

var negativeDecimalThresholds = []decimalThreshold{
	{"128", DetailSint8},
	{"32768", DetailSint16},
	{"2147483648", DetailSint32},
	{"9223372036854775808", DetailSint64},
}

// decimalThresholdLookup mirrors isLessThanOrEqualNumber/getDecimalNumberType:
// s (which may still contain "_" separators) is compared digit-by-digit,
// skipping underscores, against each threshold's canonical digit string.
func decimalThresholdLookup(s []byte, digitCount int, thresholds []decimalThreshold) DetailedValueType {
	for _, th := range thresholds {
		if digitCount < len(th.digits) {
			return th.typ
		}
		if digitCount == len(th.digits) && numberLessOrEqual(s, th.digits) {
			return th.typ
		}
	}
	return DetailBigInt
}

func numberLessOrEqual(s []byte, cmp string) bool {
	i, j := 0, 0
	for i < len(s) && j < len(cmp) {
		if s[i] != cmp[j] {
			if s[i] != '_' {
				return s[i] < cmp[j]
			}
			i++
			continue
		}
		i++
		j++
	}
	for i < len(s) && s[i] == '_' {
		i++
	}
	return i == len(s) && j == len(cmp)
}

type pow2Threshold struct {
	bits      int
	firstChar byte
	typ       DetailedValueType
}

func binaryThresholds(negative bool) []pow2Threshold {
	if negative {
		return []pow2Threshold{
			{8, '1', DetailSint8}, {16, '1', DetailSint16},
			{32, '1', DetailSint32}, {64, '1', DetailSint64},
		}
	}
	return []pow2Threshold{
		{7, '1', DetailUint7}, {8, '1', DetailUint8}, {15, '1', DetailUint15},
		{16, '1', DetailUint16}, {31, '1', DetailUint31}, {32, '1', DetailUint32},
		{63, '1', DetailUint63}, {64, '1', DetailUint64},
	}
}

func octalThresholds(negative bool) []pow2Threshold {
	if negative {
		return []pow2Threshold{
			{3, '2', DetailSint8}, {6, '1', DetailSint16},
			{11, '2', DetailSint32}, {22, '1', DetailSint64},
		}
	}
	return []pow2Threshold{
		{3, '1', DetailUint7}, {3, '3', DetailUint8}, {5, '7', DetailUint15},
		{6, '1', DetailUint16}, {11, '1', DetailUint31}, {11, '3', DetailUint32},
		{21, '7', DetailUint63}, {22, '1', DetailUint64},
	}
}

func hexThresholds(negative bool) []pow2Threshold {
	if negative {
		return []pow2Threshold{
			{2, '8', DetailSint8}, {4, '8', DetailSint16},
			{8, '8', DetailSint32}, {16, '8', DetailSint64},
		}
	}
	return []pow2Threshold{
		{2, '7', DetailUint7}, {2, 'F', DetailUint8}, {4, '7', DetailUint15},
		{4, 'F', DetailUint16}, {8, '7', DetailUint31}, {8, 'F', DetailUint32},
		{16, '7', DetailUint63}, {16, 'F', DetailUint64},
	}
}

func scanBasePow2Detailed(s []byte, isBaseDigit func(byte) bool, negative bool, thresholds []pow2Threshold) DetailedValueType {
	if len(s) == 0 {
		return DetailInvalid
	}
	s = skipLeadingZeros(s)
	digitCount := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isBaseDigit(c) {
			digitCount++
			continue
		}
		if isLegalUnderscore(s, i) {
			continue
		}
		return DetailInvalid
	}
	return pow2ThresholdLookup(s, digitCount, thresholds, negative)
}

// pow2ThresholdLookup mirrors getBasePowerOfTwoNumberType: for the
// candidate bit width at this digit count, the leading hex/oct/bin digit
// (case-folded to uppercase for comparison) must be <= the threshold's
// first-digit bound, and for negative thresholds every following digit must
// be zero (only the single exact power-of-two magnitude is SINT_k; one more
// unit overflows to the next width).
func pow2ThresholdLookup(s []byte, digitCount int, thresholds []pow2Threshold, checkSubsequentDigits bool) DetailedValueType {
	for _, th := range thresholds {
		if digitCount < th.bits {
			return th.typ
		}
		if digitCount > th.bits {
			continue
		}
		first := upperHexChar(s[0])
		if first < th.firstChar {
			return th.typ
		}
		if first > th.firstChar {
			continue
		}
		if !checkSubsequentDigits || isAllZeros(s[1:]) {
			return th.typ
		}
	}
	return DetailBigInt
}

func upperHexChar(c byte) byte {
	if c >= 'a' && c <= 'f' {
		return c - 'a' + 'A'
	}
	return c
}
