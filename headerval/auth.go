package headerval

import (
	"encoding/base64"
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// BasicAuth is the decoded credential pair from an "Authorization: Basic
// ..." or "WWW-Authenticate"-prompted header value (RFC 7617).
type BasicAuth struct {
	Username string
	Password string
}

// ParseBasicAuth decodes a Basic credentials value, including the scheme prefix.
func ParseBasicAuth(s string) (BasicAuth, error) {
	scheme, param, ok := splitScheme(s)
	if !ok || !wireutil.EqualFold(scheme, "Basic") {
		return BasicAuth{}, errInvalid("not a Basic credentials value")
	}
	decoded, err := base64.StdEncoding.DecodeString(param)
	if err != nil {
		return BasicAuth{}, errInvalid("invalid base64 in Basic credentials")
	}
	colon := strings.IndexByte(string(decoded), ':')
	if colon < 0 {
		return BasicAuth{}, errInvalid("Basic credentials missing ':' separator")
	}
	return BasicAuth{Username: string(decoded[:colon]), Password: string(decoded[colon+1:])}, nil
}

// String reconstructs the "Basic base64(user:pass)" wire form.
func (b BasicAuth) String() string {
	raw := b.Username + ":" + b.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// BearerToken is a decoded "Authorization: Bearer <token>" value (RFC 6750).
type BearerToken string

// ParseBearerToken validates and extracts the bearer token.
func ParseBearerToken(s string) (BearerToken, error) {
	scheme, param, ok := splitScheme(s)
	if !ok || !wireutil.EqualFold(scheme, "Bearer") {
		return "", errInvalid("not a Bearer credentials value")
	}
	if !isBearerTokenChars(param) {
		return "", errInvalid("invalid characters in bearer token")
	}
	return BearerToken(param), nil
}

// String reconstructs the "Bearer <token>" wire form.
func (b BearerToken) String() string { return "Bearer " + string(b) }

func isBearerTokenChars(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		switch {
		case isAlnum:
		case c == '-' || c == '.' || c == '_' || c == '~' || c == '+' || c == '/' || c == '=':
		default:
			return false
		}
	}
	return true
}

// DigestAuth holds the name/value pairs of an RFC 7616 Digest challenge or
// credentials value (the auth-param list following the "Digest" scheme).
type DigestAuth struct {
	Order  []string
	Params map[string]string
}

// ParseDigestAuth parses a Digest value's comma-separated auth-param list.
func ParseDigestAuth(s string) (DigestAuth, error) {
	scheme, param, ok := splitScheme(s)
	if !ok || !wireutil.EqualFold(scheme, "Digest") {
		return DigestAuth{}, errInvalid("not a Digest credentials value")
	}
	d := DigestAuth{Params: make(map[string]string)}
	for _, part := range splitTopLevelComma(param) {
		part = wireutil.TrimOWSString(part)
		if part == "" {
			continue
		}
		eq := strings.IndexByte(part, '=')
		if eq < 0 {
			return DigestAuth{}, errInvalid("malformed Digest auth-param")
		}
		name := wireutil.TrimOWSString(part[:eq])
		value := unquote(wireutil.TrimOWSString(part[eq+1:]))
		if !wireutil.IsToken(name) {
			return DigestAuth{}, errInvalid("Digest auth-param name is not a token")
		}
		if _, seen := d.Params[name]; !seen {
			d.Order = append(d.Order, name)
		}
		d.Params[name] = value
	}
	if len(d.Order) == 0 {
		return DigestAuth{}, errInvalid("empty Digest credentials")
	}
	return d, nil
}

// String reconstructs the "Digest k=\"v\", ..." wire form in original order.
func (d DigestAuth) String() string {
	parts := make([]string, len(d.Order))
	for i, name := range d.Order {
		parts[i] = name + `="` + strings.ReplaceAll(d.Params[name], `"`, `\"`) + `"`
	}
	return "Digest " + strings.Join(parts, ", ")
}

// splitScheme splits "Scheme param..." into the scheme token and the
// remainder, trimmed.
func splitScheme(s string) (scheme, rest string, ok bool) {
	sp := strings.IndexByte(s, ' ')
	if sp < 0 {
		return "", "", false
	}
	return s[:sp], wireutil.TrimOWSString(s[sp+1:]), true
}
