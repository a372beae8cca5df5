package message

// isTokenChar reports whether b is a valid RFC 9110 "token" character:
// VCHAR (0x21-0x7E) excluding the separator set.
func isTokenChar(b byte) bool {
	if b < 0x21 || b > 0x7E {
		return false
	}
	switch b {
	case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=', '{', '}':
		return false
	}
	return true
}

func isToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

// isFieldValueByte reports whether b may appear in a field-value: HTAB, SP,
// VCHAR, or obs-text (0x80-0xFF).
func isFieldValueByte(b byte) bool {
	return b == '\t' || b == ' ' || (b >= 0x21 && b <= 0x7E) || b >= 0x80
}

func validateHeaderField(name, value string) error {
	if !isToken(name) {
		return NewInvalidHeaderValue("header name is not a token: " + name)
	}
	for i := 0; i < len(value); i++ {
		b := value[i]
		if b == '\r' || b == '\n' {
			return NewInvalidHeaderValue("header value contains CR or LF")
		}
		if !isFieldValueByte(b) {
			return NewInvalidHeaderValue("header value contains disallowed byte")
		}
	}
	return nil
}
