package headerval

import (
	"strconv"
	"strings"
	"time"
)

// Cookie is one name/value pair as sent in a request's Cookie header.
type Cookie struct {
	Name  string
	Value string
}

// ParseCookieHeader parses a request Cookie header value ("a=1; b=2"),
// grounded on the teacher pack's readCookies (badu-http/cli/utils.go):
// split on ';', trim, split each pair on the first '=', validate the name
// as a token and the value against the cookie-octet grammar, and silently
// skip any pair that fails validation rather than rejecting the whole
// header — cookie jars have always had to tolerate other applications'
// malformed entries riding along on the same header.
func ParseCookieHeader(s string) []Cookie {
	var out []Cookie
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, val := part, ""
		if eq := strings.IndexByte(part, '='); eq >= 0 {
			name, val = part[:eq], part[eq+1:]
		}
		if !isCookieNameValid(name) {
			continue
		}
		val, ok := parseCookieOctets(val)
		if !ok {
			continue
		}
		out = append(out, Cookie{Name: name, Value: val})
	}
	return out
}

// String reconstructs a single Cookie pair as it appears in a Cookie header.
func (c Cookie) String() string {
	return sanitizeCookieName(c.Name) + "=" + sanitizeCookieValue(c.Value)
}

// SameSite is the SameSite attribute of a Set-Cookie response header.
type SameSite int

const (
	SameSiteUnspecified SameSite = iota
	SameSiteDefault
	SameSiteLax
	SameSiteStrict
	SameSiteNone
)

// SetCookie is a parsed Set-Cookie response header value (RFC 6265 §4.1).
type SetCookie struct {
	Name, Value string
	Path        string
	Domain      string
	Expires     time.Time
	HasExpires  bool
	MaxAge      int
	Secure      bool
	HttpOnly    bool
	SameSite    SameSite
}

// ParseSetCookie parses one Set-Cookie header value, grounded on
// badu-http/cli/utils.go's readSetCookies attribute switch.
func ParseSetCookie(s string) (SetCookie, error) {
	parts := strings.Split(s, ";")
	if len(parts) == 0 {
		return SetCookie{}, errInvalid("empty Set-Cookie")
	}
	nameValue := strings.TrimSpace(parts[0])
	eq := strings.IndexByte(nameValue, '=')
	if eq < 0 {
		return SetCookie{}, errInvalid("Set-Cookie missing name=value")
	}
	name, val := nameValue[:eq], nameValue[eq+1:]
	if !isCookieNameValid(name) {
		return SetCookie{}, errInvalid("invalid cookie name")
	}
	val, ok := parseCookieOctets(val)
	if !ok {
		return SetCookie{}, errInvalid("invalid cookie value")
	}
	sc := SetCookie{Name: name, Value: val}

	for _, attr := range parts[1:] {
		attr = strings.TrimSpace(attr)
		if attr == "" {
			continue
		}
		attrName, attrVal := attr, ""
		if j := strings.IndexByte(attr, '='); j >= 0 {
			attrName, attrVal = attr[:j], strings.TrimSpace(attr[j+1:])
		}
		switch strings.ToLower(attrName) {
		case "secure":
			sc.Secure = true
		case "httponly":
			sc.HttpOnly = true
		case "path":
			sc.Path = attrVal
		case "domain":
			sc.Domain = strings.TrimPrefix(attrVal, ".")
		case "max-age":
			n, err := parseMaxAge(attrVal)
			if err == nil {
				sc.MaxAge = n
			}
		case "expires":
			if t, err := ParseHTTPDate(attrVal); err == nil {
				sc.Expires, sc.HasExpires = t, true
			}
		case "samesite":
			switch strings.ToLower(attrVal) {
			case "lax":
				sc.SameSite = SameSiteLax
			case "strict":
				sc.SameSite = SameSiteStrict
			case "none":
				sc.SameSite = SameSiteNone
			default:
				sc.SameSite = SameSiteDefault
			}
		}
	}
	return sc, nil
}

// String reconstructs the Set-Cookie wire form, following the attribute
// order and sanitize-on-write behavior of the teacher's Cookie.String.
func (sc SetCookie) String() string {
	var b strings.Builder
	b.WriteString(sanitizeCookieName(sc.Name))
	b.WriteByte('=')
	b.WriteString(sanitizeCookieValue(sc.Value))
	if sc.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(sc.Path)
	}
	if sc.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(sc.Domain)
	}
	if sc.HasExpires {
		b.WriteString("; Expires=")
		b.WriteString(FormatHTTPDate(sc.Expires))
	}
	if sc.MaxAge > 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(sc.MaxAge))
	} else if sc.MaxAge < 0 {
		b.WriteString("; Max-Age=0")
	}
	switch sc.SameSite {
	case SameSiteLax:
		b.WriteString("; SameSite=Lax")
	case SameSiteStrict:
		b.WriteString("; SameSite=Strict")
	case SameSiteNone:
		b.WriteString("; SameSite=None")
	}
	if sc.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	if sc.Secure {
		b.WriteString("; Secure")
	}
	return b.String()
}

func isCookieNameValid(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isCookieNameByte(name[i]) {
			return false
		}
	}
	return true
}

func isCookieNameByte(c byte) bool {
	if c <= 0x20 || c >= 0x7F {
		return false
	}
	switch c {
	case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=', '{', '}':
		return false
	}
	return true
}

// parseCookieOctets strips optional surrounding DQUOTEs and validates every
// byte against the cookie-octet grammar (RFC 6265 §4.1.1).
func parseCookieOctets(raw string) (string, bool) {
	if len(raw) > 1 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	for i := 0; i < len(raw); i++ {
		if !isCookieOctet(raw[i]) {
			return "", false
		}
	}
	return raw, true
}

func isCookieOctet(c byte) bool {
	switch {
	case c == 0x21:
		return true
	case c >= 0x23 && c <= 0x2B:
		return true
	case c >= 0x2D && c <= 0x3A:
		return true
	case c >= 0x3C && c <= 0x5B:
		return true
	case c >= 0x5D && c <= 0x7E:
		return true
	}
	return false
}

// sanitizeCookieName strips bytes that would break the name=value grammar
// rather than rejecting the whole cookie, matching the teacher's
// write-time sanitize-don't-fail posture in cli/cookie.go.
func sanitizeCookieName(name string) string {
	return dropBytes(name, func(c byte) bool { return !isCookieNameValid(string(c)) })
}

func sanitizeCookieValue(v string) string {
	return dropBytes(v, func(c byte) bool { return !isCookieOctet(c) })
}

func dropBytes(s string, drop func(byte) bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if !drop(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func parseMaxAge(s string) (int, error) {
	if s == "" {
		return 0, errInvalid("empty Max-Age")
	}
	neg := s[0] == '-'
	digits := s
	if neg {
		digits = s[1:]
	}
	if digits == "" {
		return 0, errInvalid("invalid Max-Age")
	}
	n := 0
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, errInvalid("invalid Max-Age")
		}
		n = n*10 + int(digits[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

