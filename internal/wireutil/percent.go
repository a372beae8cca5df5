package wireutil

import (
	"fmt"
	"strings"
)

// PercentDecode decodes RFC 3986 percent-encoding in s. %HH escapes are
// accepted with either hex case; any other use of '%' is an error.
func PercentDecode(s string) (string, error) {
	if !strings.ContainsRune(s, '%') {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", fmt.Errorf("wireutil: truncated percent-escape at %d", i)
		}
		hi, ok1 := unhex(s[i+1])
		lo, ok2 := unhex(s[i+2])
		if !ok1 || !ok2 {
			return "", fmt.Errorf("wireutil: invalid percent-escape %q", s[i:i+3])
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}
	return b.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

const upperhex = "0123456789ABCDEF"

// PercentEncode percent-encodes every byte in s for which shouldEscape
// returns true.
func PercentEncode(s string, shouldEscape func(byte) bool) string {
	needsEscape := false
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xF])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ShouldEscapePathByte is the "should this byte be percent-encoded inside a
// URI path" predicate: anything outside unreserved + sub-delims + ':@' and
// the '/' segment separator.
func ShouldEscapePathByte(c byte) bool {
	if isUnreserved(c) {
		return false
	}
	switch c {
	case '/', ':', '@', '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return false
	}
	return true
}

// ShouldEscapeQueryByte is the percent-encoding predicate for a URI query
// component: unreserved + sub-delims except '&' and '=', plus ':@/?'.
func ShouldEscapeQueryByte(c byte) bool {
	if isUnreserved(c) {
		return false
	}
	switch c {
	case '/', ':', '@', '?', '!', '$', '\'', '(', ')', '*', '+', ',', ';':
		return false
	}
	return true
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}
