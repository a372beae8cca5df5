package headerval

import (
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// ContentType is a parsed media type: "type/subtype; param=value; ...".
// ParamOrder records parameter names in the order they were received;
// Params is the name-to-value lookup (names are case-insensitive).
type ContentType struct {
	Type       string
	Subtype    string
	ParamOrder []string
	Params     map[string]string
}

// ParseContentType parses a Content-Type (or Accept media-range) value.
func ParseContentType(s string) (ContentType, error) {
	typ, order, params, err := parseMediaType(s)
	if err != nil {
		return ContentType{}, err
	}
	slash := strings.IndexByte(typ, '/')
	if slash < 0 {
		return ContentType{}, errInvalid("media type missing subtype")
	}
	return ContentType{Type: typ[:slash], Subtype: typ[slash+1:], ParamOrder: order, Params: params}, nil
}

// IsJSON reports whether the media type is application/json or carries a
// "+json" structured-syntax suffix (RFC 6839), e.g. application/vnd.api+json.
func (c ContentType) IsJSON() bool {
	if !wireutil.EqualFold(c.Type, "application") {
		return false
	}
	return wireutil.EqualFold(c.Subtype, "json") || strings.HasSuffix(strings.ToLower(c.Subtype), "+json")
}

// String reconstructs the wire form, with parameters in received order.
func (c ContentType) String() string {
	var b strings.Builder
	b.WriteString(c.Type)
	b.WriteByte('/')
	b.WriteString(c.Subtype)
	writeParams(&b, c.ParamOrder, c.Params)
	return b.String()
}

// parseMediaType splits "type/subtype ; a=b ; c=d" into the bare type token,
// a parameter name order, and a parameter map, accepting both quoted and
// bare parameter values.
func parseMediaType(s string) (string, []string, map[string]string, error) {
	parts := splitParams(s)
	if len(parts) == 0 {
		return "", nil, nil, errInvalid("empty media type")
	}
	typ := strings.ToLower(wireutil.TrimOWSString(parts[0]))
	if !wireutil.IsToken(strings.Replace(typ, "/", "a", 1)) {
		return "", nil, nil, errInvalid("media type is not a token pair")
	}
	var order []string
	var params map[string]string
	for _, p := range parts[1:] {
		p = wireutil.TrimOWSString(p)
		if p == "" {
			continue
		}
		eq := strings.IndexByte(p, '=')
		if eq < 0 {
			return "", nil, nil, errInvalid("malformed media type parameter")
		}
		name := strings.ToLower(wireutil.TrimOWSString(p[:eq]))
		value := wireutil.TrimOWSString(p[eq+1:])
		value = unquote(value)
		if params == nil {
			params = make(map[string]string)
		}
		if _, seen := params[name]; !seen {
			order = append(order, name)
		}
		params[name] = value
	}
	return typ, order, params, nil
}

// splitParams splits on ';' but not inside a quoted-string.
func splitParams(s string) []string {
	var out []string
	inQuotes := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case ';':
			if !inQuotes {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner := s[1 : len(s)-1]
		return strings.ReplaceAll(inner, `\"`, `"`)
	}
	return s
}

// writeParams appends "; name=value" pairs in order, the name-order slice
// produced alongside params by parseMediaType (round-tripping received
// parameter order rather than an arbitrary sorted one).
func writeParams(b *strings.Builder, order []string, params map[string]string) {
	for _, k := range order {
		b.WriteString("; ")
		b.WriteString(k)
		b.WriteByte('=')
		v := params[k]
		if needsQuoting(v) {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(v, `"`, `\"`))
			b.WriteByte('"')
		} else {
			b.WriteString(v)
		}
	}
}

func needsQuoting(v string) bool {
	if v == "" {
		return true
	}
	for i := 0; i < len(v); i++ {
		if !wireutil.IsTokenChar(v[i]) {
			return true
		}
	}
	return false
}
