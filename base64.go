package yson

import "encoding/base64"

// EncodeBase64 encodes data as standard Base64 with "=" padding.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes text as Base64. Trailing "=" padding is ignored if
// present, and a final quartet of length 2 or 3 (as well as the standard
// 0 or 4) is accepted. Any byte outside the Base64 alphabet is an error.
func DecodeBase64(text []byte) ([]byte, error) {
	trimmed := text
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == '=' {
		trimmed = trimmed[:len(trimmed)-1]
	}

	switch len(trimmed) % 4 {
	case 1:
		return nil, &Error{Msg: "invalid base64 length", Offset: -1}
	}

	return base64.RawStdEncoding.DecodeString(string(trimmed))
}
