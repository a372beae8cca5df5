// Package wireutil holds the byte-level primitives shared by the encoder,
// the incremental decoder, and the header-value parser family: ASCII
// classifiers, case-insensitive comparison, overflow-checked integer
// parsing, and percent-encoding. None of it allocates more than the
// teacher's own fastparser helpers do.
package wireutil

// IsTokenChar reports whether b is a valid RFC 9110 "token" character:
// VCHAR (0x21-0x7E) excluding the separator set.
func IsTokenChar(b byte) bool {
	if b < 0x21 || b > 0x7E {
		return false
	}
	switch b {
	case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=', '{', '}':
		return false
	}
	return true
}

// IsToken reports whether s is entirely made of token characters and non-empty.
func IsToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsTokenChar(s[i]) {
			return false
		}
	}
	return true
}

// IsVChar reports whether b is a visible ASCII character (0x21-0x7E).
func IsVChar(b byte) bool { return b >= 0x21 && b <= 0x7E }

// IsFieldValueByte reports whether b may appear in a field-value: HTAB, SP,
// VCHAR, or obs-text (0x80-0xFF).
func IsFieldValueByte(b byte) bool {
	return b == '\t' || b == ' ' || IsVChar(b) || b >= 0x80
}

// IsOWS reports whether b is optional whitespace (SP or HTAB).
func IsOWS(b byte) bool { return b == ' ' || b == '\t' }

// TrimOWS trims leading and trailing SP/HTAB from b.
func TrimOWS(b []byte) []byte {
	for len(b) > 0 && IsOWS(b[0]) {
		b = b[1:]
	}
	for len(b) > 0 && IsOWS(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	return b
}

// TrimOWSString is TrimOWS for strings.
func TrimOWSString(s string) string {
	start := 0
	for start < len(s) && IsOWS(s[start]) {
		start++
	}
	end := len(s)
	for end > start && IsOWS(s[end-1]) {
		end--
	}
	return s[start:end]
}

// EqualFold is an ASCII-only case-insensitive comparison. Unlike
// strings.EqualFold it never consults Unicode casing tables, which matches
// RFC 9110's requirement that comparisons here use strict ASCII folding.
func EqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if foldByte(a[i]) != foldByte(b[i]) {
			return false
		}
	}
	return true
}

func foldByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// ContainsFoldToken reports whether haystack contains needle as an exact
// ASCII case-insensitive match against one item of a comma-separated list.
func ContainsFoldToken(haystack, needle string) bool {
	for _, tok := range SplitComma(haystack) {
		if EqualFold(TrimOWSString(tok), needle) {
			return true
		}
	}
	return false
}

// SplitComma splits s on ',' without trimming; callers trim individually.
func SplitComma(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
