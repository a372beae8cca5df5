package headerval

import (
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// ETag is a single entity tag, as used in ETag, If-Match, If-None-Match,
// and If-Range header values.
type ETag struct {
	Value string // the opaque-tag content, without quotes
	Weak  bool
}

// ParseETag parses a single ETag value: [W/]DQUOTE *etagc DQUOTE.
func ParseETag(s string) (ETag, error) {
	weak := false
	if strings.HasPrefix(s, "W/") {
		weak = true
		s = s[2:]
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ETag{}, errInvalid("entity-tag is not a quoted string")
	}
	inner := s[1 : len(s)-1]
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '"' || c < 0x21 || (c > 0x7E && c < 0x80) {
			return ETag{}, errInvalid("entity-tag contains disallowed byte")
		}
	}
	return ETag{Value: inner, Weak: weak}, nil
}

// String reconstructs the quoted, optionally weak-prefixed wire form.
func (e ETag) String() string {
	if e.Weak {
		return `W/"` + e.Value + `"`
	}
	return `"` + e.Value + `"`
}

// Equal implements RFC 9110 §8.8.3.2 comparison: strong comparison requires
// both tags to be non-weak and byte-equal; weak comparison only requires
// equal values.
func (e ETag) Equal(other ETag, strong bool) bool {
	if strong && (e.Weak || other.Weak) {
		return false
	}
	return e.Value == other.Value
}

// ETagList is a comma-separated list of entity-tags, as used in If-Match
// and If-None-Match, or the literal wildcard "*".
type ETagList struct {
	Tags     []ETag
	Wildcard bool
}

// ParseETagList parses an If-Match/If-None-Match style list.
func ParseETagList(s string) (ETagList, error) {
	s = wireutil.TrimOWSString(s)
	if s == "*" {
		return ETagList{Wildcard: true}, nil
	}
	var out ETagList
	for _, part := range splitTopLevelComma(s) {
		part = wireutil.TrimOWSString(part)
		if part == "" {
			continue
		}
		tag, err := ParseETag(part)
		if err != nil {
			return ETagList{}, err
		}
		out.Tags = append(out.Tags, tag)
	}
	if len(out.Tags) == 0 {
		return ETagList{}, errInvalid("empty entity-tag list")
	}
	return out, nil
}

// String reconstructs the wire form.
func (l ETagList) String() string {
	if l.Wildcard {
		return "*"
	}
	parts := make([]string, len(l.Tags))
	for i, t := range l.Tags {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// splitTopLevelComma splits on ',' that are not inside a quoted-string, so
// commas cannot appear inside an entity-tag's opaque value (they can't per
// grammar, but this stays correct even for malformed input).
func splitTopLevelComma(s string) []string {
	var out []string
	inQuotes := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}
