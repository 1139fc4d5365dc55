package yson

import "math"

// ParseInteger parses s as a signed integer literal into a 64-bit
// accumulator with overflow detection. When detectBase is true, it
// recognizes "0b"/"0o"/"0x" prefixes (case-insensitive) and allows single,
// non-leading, non-trailing, non-consecutive "_" digit separators; when
// false, "_" is rejected and the literal must be plain decimal digits. It
// also recognizes the literals "true" (1), "false" (0) and "null" (0).
func ParseInteger(s []byte, detectBase bool) (int64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	switch string(s) {
	case "true":
		return 1, true
	case "false", "null":
		return 0, true
	}

	i := 0
	neg := false
	if s[i] == '+' || s[i] == '-' {
		neg = s[i] == '-'
		i++
	}

	mag, ok := scanMagnitude(s[i:], detectBase)
	if !ok {
		return 0, false
	}

	if neg {
		if mag > uint64(math.MaxInt64)+1 {
			return 0, false
		}
		if mag == uint64(math.MaxInt64)+1 {
			return math.MinInt64, true
		}
		return -int64(mag), true
	}
	if mag > uint64(math.MaxInt64) {
		return 0, false
	}
	return int64(mag), true
}

// ParseUnsignedInteger parses s the same way as ParseInteger but over the
// full uint64 range and rejects a leading '-'.
func ParseUnsignedInteger(s []byte, detectBase bool) (uint64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	switch string(s) {
	case "true":
		return 1, true
	case "false", "null":
		return 0, true
	}
	i := 0
	if s[i] == '-' {
		return 0, false
	}
	if s[i] == '+' {
		i++
	}
	return scanMagnitude(s[i:], detectBase)
}

// scanMagnitude scans an unsigned digit run (with optional base prefix and,
// when detectBase, "_" separators) into a uint64, detecting overflow.
func scanMagnitude(s []byte, detectBase bool) (uint64, bool) {
	if len(s) == 0 {
		return 0, false
	}

	base := 10
	i := 0
	if detectBase && len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'b', 'B':
			base, i = 2, 2
		case 'o', 'O':
			base, i = 8, 2
		case 'x', 'X':
			base, i = 16, 2
		}
	}
	if i >= len(s) {
		return 0, false
	}

	var acc uint64
	sawDigit := false
	afterUnderscore := false
	for ; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			if !detectBase || !sawDigit || afterUnderscore {
				return 0, false
			}
			afterUnderscore = true
			continue
		}
		d, ok := digitValue(c)
		if !ok || d >= base {
			return 0, false
		}
		if acc > (math.MaxUint64-uint64(d))/uint64(base) {
			return 0, false
		}
		acc = acc*uint64(base) + uint64(d)
		sawDigit = true
		afterUnderscore = false
	}
	if !sawDigit || afterUnderscore {
		return 0, false
	}
	return acc, true
}

func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// ToInt8 narrows n, succeeding only if the conversion round-trips exactly.
func ToInt8(n int64) (int8, bool) {
	v := int8(n)
	return v, int64(v) == n
}

// ToInt16 narrows n, succeeding only if the conversion round-trips exactly.
func ToInt16(n int64) (int16, bool) {
	v := int16(n)
	return v, int64(v) == n
}

// ToInt32 narrows n, succeeding only if the conversion round-trips exactly.
func ToInt32(n int64) (int32, bool) {
	v := int32(n)
	return v, int64(v) == n
}

// ToUint8 narrows n, succeeding only if n is non-negative and the conversion
// round-trips exactly.
func ToUint8(n int64) (uint8, bool) {
	if n < 0 {
		return 0, false
	}
	v := uint8(n)
	return v, int64(v) == n
}

// ToUint16 narrows n, succeeding only if n is non-negative and the
// conversion round-trips exactly.
func ToUint16(n int64) (uint16, bool) {
	if n < 0 {
		return 0, false
	}
	v := uint16(n)
	return v, int64(v) == n
}

// ToUint32 narrows n, succeeding only if n is non-negative and the
// conversion round-trips exactly.
func ToUint32(n int64) (uint32, bool) {
	if n < 0 {
		return 0, false
	}
	v := uint32(n)
	return v, int64(v) == n
}

// ToUint64 widens n to uint64, succeeding only if n is non-negative.
func ToUint64(n int64) (uint64, bool) {
	if n < 0 {
		return 0, false
	}
	return uint64(n), true
}
