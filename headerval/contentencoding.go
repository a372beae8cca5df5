package headerval

import (
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// ContentEncoding is the ordered list of codings applied to the payload, as
// in "Content-Encoding: gzip, br" (applied in listed order).
type ContentEncoding []string

// ParseContentEncoding splits a comma-separated coding list.
func ParseContentEncoding(s string) (ContentEncoding, error) {
	tokens := wireutil.SplitComma(s)
	out := make(ContentEncoding, 0, len(tokens))
	for _, t := range tokens {
		t = wireutil.TrimOWSString(t)
		if t == "" {
			continue
		}
		if !wireutil.IsToken(t) {
			return nil, errInvalid("content-coding is not a token")
		}
		out = append(out, strings.ToLower(t))
	}
	if len(out) == 0 {
		return nil, errInvalid("empty Content-Encoding")
	}
	return out, nil
}

// String joins the codings with ", ".
func (c ContentEncoding) String() string { return strings.Join(c, ", ") }
