package headerval

import (
	"strconv"
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// ContentDisposition is a parsed Content-Disposition value (RFC 6266),
// e.g. `attachment; filename="report.pdf"; filename*=UTF-8''r%C3%A9sum%C3%A9.pdf`.
// ParamOrder records parameter names in the order they were received.
type ContentDisposition struct {
	Type       string // "inline", "attachment", or a form-data disposition type
	ParamOrder []string
	Params     map[string]string
	Filename   string // resolved filename: filename* (RFC 5987) takes priority over filename
}

// ParseContentDisposition parses the disposition type and its parameters,
// preferring the RFC 5987 extended filename* parameter over the plain one
// when both are present.
func ParseContentDisposition(s string) (ContentDisposition, error) {
	typ, order, params, err := parseMediaType(s)
	if err != nil {
		return ContentDisposition{}, err
	}
	if !wireutil.IsToken(typ) {
		return ContentDisposition{}, errInvalid("disposition type is not a token")
	}

	cd := ContentDisposition{Type: typ, ParamOrder: order, Params: params}
	if ext, ok := params["filename*"]; ok {
		name, err := decodeExtValue(ext)
		if err != nil {
			return ContentDisposition{}, err
		}
		cd.Filename = name
	} else if name, ok := params["filename"]; ok {
		cd.Filename = name
	}
	return cd, nil
}

// String reconstructs the wire form; it re-derives filename*/filename from
// cd.Params rather than cd.Filename, so round-tripping a parsed value is exact.
func (cd ContentDisposition) String() string {
	var b strings.Builder
	b.WriteString(cd.Type)
	writeParams(&b, cd.ParamOrder, cd.Params)
	return b.String()
}

// decodeExtValue decodes an RFC 5987 ext-value: charset'language'pct-encoded.
func decodeExtValue(v string) (string, error) {
	parts := strings.SplitN(v, "'", 3)
	if len(parts) != 3 {
		return "", errInvalid("malformed RFC 5987 extended value")
	}
	charset := strings.ToLower(parts[0])
	if charset != "utf-8" && charset != "iso-8859-1" && charset != "" {
		return "", errInvalid("unsupported charset in extended value")
	}
	decoded, err := percentDecodeExt(parts[2])
	if err != nil {
		return "", errInvalid("invalid percent-encoding in extended value")
	}
	return decoded, nil
}

// percentDecodeExt decodes %HH triples as used by RFC 5987 (a subset of
// RFC 3986 percent-encoding with no reserved-character exceptions).
func percentDecodeExt(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", errInvalid("truncated percent-escape")
		}
		n, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return "", errInvalid("invalid percent-escape")
		}
		b.WriteByte(byte(n))
		i += 2
	}
	return b.String(), nil
}
