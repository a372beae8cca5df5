package headerval

import (
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// Expect is the parsed value of an Expect header. The only standard token is
// "100-continue"; other tokens are preserved verbatim for forward
// compatibility per RFC 9110 §10.1.1.
type Expect string

// ParseExpect validates and returns an Expect header value, lower-cased for
// the well-known "100-continue" token.
func ParseExpect(s string) (Expect, error) {
	s = wireutil.TrimOWSString(s)
	if s == "" {
		return "", errInvalid("empty Expect header")
	}
	if wireutil.EqualFold(s, "100-continue") {
		return "100-continue", nil
	}
	return Expect(s), nil
}

// String reconstructs the wire form of e.
func (e Expect) String() string { return string(e) }

// Trailer is the ordered list of field names a sender will include in the
// chunked trailer section, per RFC 9112 §6.3.1.
type Trailer []string

// ParseTrailer splits a comma-separated field-name list.
func ParseTrailer(s string) (Trailer, error) {
	tokens := wireutil.SplitComma(s)
	out := make(Trailer, 0, len(tokens))
	for _, t := range tokens {
		t = wireutil.TrimOWSString(t)
		if t == "" {
			continue
		}
		if !wireutil.IsToken(t) {
			return nil, errInvalid("trailer field name is not a token")
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, errInvalid("empty Trailer header")
	}
	return out, nil
}

// String joins the field names with ", ".
func (t Trailer) String() string { return strings.Join(t, ", ") }

// UpgradeProtocol is one "protocol[/version]" entry in an Upgrade header.
type UpgradeProtocol struct {
	Name    string
	Version string // empty if absent
}

// Upgrade is the ordered list of protocols offered or accepted via the
// Upgrade header, per RFC 9110 §7.8. The decoder surfaces the completed
// response and leaves any switched-protocol bytes in Remaining(); it does
// not itself perform the switch (spec.md §9 design note).
type Upgrade []UpgradeProtocol

// ParseUpgrade splits a comma-separated protocol list, each optionally
// carrying a "/version" suffix.
func ParseUpgrade(s string) (Upgrade, error) {
	tokens := wireutil.SplitComma(s)
	out := make(Upgrade, 0, len(tokens))
	for _, t := range tokens {
		t = wireutil.TrimOWSString(t)
		if t == "" {
			continue
		}
		name, version := t, ""
		if i := strings.IndexByte(t, '/'); i >= 0 {
			name, version = t[:i], t[i+1:]
		}
		if !wireutil.IsToken(name) {
			return nil, errInvalid("upgrade protocol name is not a token")
		}
		if version != "" && !wireutil.IsToken(version) {
			return nil, errInvalid("upgrade protocol version is not a token")
		}
		out = append(out, UpgradeProtocol{Name: name, Version: version})
	}
	if len(out) == 0 {
		return nil, errInvalid("empty Upgrade header")
	}
	return out, nil
}

// String reconstructs the wire form of u.
func (u Upgrade) String() string {
	var b strings.Builder
	for i, p := range u {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Version != "" {
			b.WriteByte('/')
			b.WriteString(p.Version)
		}
	}
	return b.String()
}

// Vary is the ordered list of request header names a cache must match on,
// per RFC 9110 §12.5.5, or the single wildcard entry "*".
type Vary []string

// ParseVary splits a comma-separated field-name list, or accepts the
// literal wildcard "*".
func ParseVary(s string) (Vary, error) {
	s = wireutil.TrimOWSString(s)
	if s == "*" {
		return Vary{"*"}, nil
	}
	tokens := wireutil.SplitComma(s)
	out := make(Vary, 0, len(tokens))
	for _, t := range tokens {
		t = wireutil.TrimOWSString(t)
		if t == "" {
			continue
		}
		if !wireutil.IsToken(t) {
			return nil, errInvalid("vary field name is not a token")
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, errInvalid("empty Vary header")
	}
	return out, nil
}

// String joins the field names with ", ".
func (v Vary) String() string { return strings.Join(v, ", ") }
