package yson

// isIdentifierLike reports whether s looks like a JavaScript identifier:
// letters, digits, "$" and "_", plus \uXXXX escapes, with a non-digit first
// character. It backs the ValuesAsKeys extension, which lets an unquoted
// VALUE token serve as an object key when it's shaped like a name rather
// than a number.
func isIdentifierLike(s []byte) bool {
	if len(s) == 0 {
		return false
	}

	i := 0
	if !isIdentifierStart(s[0]) {
		if !isUnicodeEscape(s) {
			return false
		}
		i = 6
	} else {
		i = 1
	}

	for i < len(s) {
		if isIdentifierPart(s[i]) {
			i++
			continue
		}
		if !isUnicodeEscape(s[i:]) {
			return false
		}
		i += 6
	}
	return true
}

func isIdentifierStart(c byte) bool {
	return isAlpha(c) || c == '$' || c == '_'
}

func isIdentifierPart(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '$' || c == '_'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isUnicodeEscape(s []byte) bool {
	return len(s) >= 6 && s[0] == '\\' && s[1] == 'u' &&
		isHexDigit(s[2]) && isHexDigit(s[3]) && isHexDigit(s[4]) && isHexDigit(s[5])
}
