package wireutil

import (
	"fmt"
	"strconv"
)

// FormatDecimal formats n as a base-10 string, the inverse of ParseDecimal.
func FormatDecimal(n int64) string { return strconv.FormatInt(n, 10) }

// ParseDecimal parses a non-negative base-10 integer from s, rejecting
// leading/trailing whitespace, empty input, and overflow past int64.
func ParseDecimal(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("wireutil: empty decimal integer")
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("wireutil: invalid decimal digit %q", c)
		}
		d := int64(c - '0')
		if n > (1<<63-1-d)/10 {
			return 0, fmt.Errorf("wireutil: decimal integer overflow")
		}
		n = n*10 + d
	}
	return n, nil
}

// ParseHexSize parses a hex chunk-size, as used by chunked transfer coding.
// It bounds the result so that a maliciously long hex string cannot
// overflow int64; per RFC 9112 a chunk-ext may follow and is stripped by
// the caller before this is invoked.
func ParseHexSize(s []byte) (int64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("wireutil: empty chunk size")
	}
	if len(s) > 16 {
		return 0, fmt.Errorf("wireutil: chunk size too long")
	}
	var n int64
	for _, c := range s {
		var d int64
		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case c >= 'a' && c <= 'f':
			d = int64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = int64(c-'A') + 10
		default:
			return 0, fmt.Errorf("wireutil: invalid hex digit %q", c)
		}
		if n > (1<<63-1-d)/16 {
			return 0, fmt.Errorf("wireutil: chunk size overflow")
		}
		n = n*16 + d
	}
	return n, nil
}
