package headerval

import (
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// MediaRange is one entry of an Accept header: a media type (possibly with
// wildcards, "type/*" or "*/*"), its parameters (in received order), and a
// quality value.
type MediaRange struct {
	Type, Subtype string
	ParamOrder    []string
	Params        map[string]string
	Quality       float64
}

// Accept is a parsed Accept header, kept in the order received.
type Accept []MediaRange

// ParseAccept parses an Accept header value.
func ParseAccept(s string) (Accept, error) {
	var out Accept
	for _, part := range splitTopLevelComma(s) {
		part = wireutil.TrimOWSString(part)
		if part == "" {
			continue
		}
		ct, err := ParseContentType(stripQParam(part))
		if err != nil {
			return nil, err
		}
		q, err := extractQuality(part)
		if err != nil {
			return nil, err
		}
		out = append(out, MediaRange{Type: ct.Type, Subtype: ct.Subtype, ParamOrder: ct.ParamOrder, Params: ct.Params, Quality: q})
	}
	if len(out) == 0 {
		return nil, errInvalid("empty Accept")
	}
	return out, nil
}

// String reconstructs the wire form.
func (a Accept) String() string {
	parts := make([]string, len(a))
	for i, m := range a {
		ct := ContentType{Type: m.Type, Subtype: m.Subtype, ParamOrder: m.ParamOrder, Params: m.Params}
		if m.Quality >= 1.0 {
			parts[i] = ct.String()
		} else {
			parts[i] = ct.String() + ";q=" + trimQuality(m.Quality)
		}
	}
	return strings.Join(parts, ", ")
}

// QualifiedToken is one entry of an Accept-Charset or Accept-Encoding list:
// a token (or "*") with a quality value.
type QualifiedToken struct {
	Token   string
	Quality float64
}

// AcceptCharset is a parsed Accept-Charset header.
type AcceptCharset []QualifiedToken

// ParseAcceptCharset parses "utf-8, iso-8859-1;q=0.5".
func ParseAcceptCharset(s string) (AcceptCharset, error) {
	toks, err := parseQualifiedTokens(s)
	if err != nil {
		return nil, err
	}
	return AcceptCharset(toks), nil
}

func (a AcceptCharset) String() string { return formatQualifiedTokens(a) }

// AcceptEncoding is a parsed Accept-Encoding header.
type AcceptEncoding []QualifiedToken

// ParseAcceptEncoding parses "gzip;q=1.0, br;q=0.8, *;q=0".
func ParseAcceptEncoding(s string) (AcceptEncoding, error) {
	toks, err := parseQualifiedTokens(s)
	if err != nil {
		return nil, err
	}
	return AcceptEncoding(toks), nil
}

func (a AcceptEncoding) String() string { return formatQualifiedTokens(a) }

func parseQualifiedTokens(s string) ([]QualifiedToken, error) {
	var out []QualifiedToken
	for _, part := range wireutil.SplitComma(s) {
		part = wireutil.TrimOWSString(part)
		if part == "" {
			continue
		}
		tok, q, err := splitQValue(part)
		if err != nil {
			return nil, err
		}
		if tok != "*" && !wireutil.IsToken(tok) {
			return nil, errInvalid("Accept list entry is not a token")
		}
		out = append(out, QualifiedToken{Token: tok, Quality: q})
	}
	if len(out) == 0 {
		return nil, errInvalid("empty qualified-token list")
	}
	return out, nil
}

func formatQualifiedTokens(toks []QualifiedToken) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = formatQValue(t.Token, t.Quality)
	}
	return strings.Join(parts, ", ")
}

func stripQParam(part string) string {
	if i := strings.Index(strings.ToLower(part), ";q="); i >= 0 {
		return wireutil.TrimOWSString(part[:i])
	}
	return part
}

func extractQuality(part string) (float64, error) {
	lower := strings.ToLower(part)
	i := strings.Index(lower, ";q=")
	if i < 0 {
		return 1.0, nil
	}
	rest := wireutil.TrimOWSString(part[i+3:])
	if semi := strings.IndexByte(rest, ';'); semi >= 0 {
		rest = rest[:semi]
	}
	_, q, err := splitQValue("x;q=" + rest)
	if err != nil {
		return 0, errInvalid("invalid q-value")
	}
	return q, nil
}

func trimQuality(q float64) string {
	s := formatQValue("", q)
	return strings.TrimPrefix(s, ";q=")
}
