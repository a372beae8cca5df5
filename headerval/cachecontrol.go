package headerval

import (
	"strconv"
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// CacheControl holds the parsed directives of a Cache-Control header.
// Directives are kept in original insertion order in Order, alongside a
// lookup map, since some directives (e.g. no-cache with field names) carry
// a value and others are bare flags.
type CacheControl struct {
	Order      []string
	Directives map[string]string // value is "" for bare (valueless) directives
}

// ParseCacheControl parses a comma-separated directive list, each of the
// form "token" or "token=value" (value may be a quoted-string).
func ParseCacheControl(s string) (CacheControl, error) {
	cc := CacheControl{Directives: make(map[string]string)}
	for _, part := range splitTopLevelComma(s) {
		part = wireutil.TrimOWSString(part)
		if part == "" {
			continue
		}
		name := part
		value := ""
		if eq := strings.IndexByte(part, '='); eq >= 0 {
			name = part[:eq]
			value = unquote(wireutil.TrimOWSString(part[eq+1:]))
		}
		name = strings.ToLower(wireutil.TrimOWSString(name))
		if !wireutil.IsToken(name) {
			return CacheControl{}, errInvalid("cache-directive is not a token")
		}
		if _, seen := cc.Directives[name]; !seen {
			cc.Order = append(cc.Order, name)
		}
		cc.Directives[name] = value
	}
	if len(cc.Order) == 0 {
		return CacheControl{}, errInvalid("empty Cache-Control")
	}
	return cc, nil
}

// Has reports whether directive is present, bare or with a value.
func (cc CacheControl) Has(directive string) bool {
	_, ok := cc.Directives[directive]
	return ok
}

// MaxAge returns the numeric value of the max-age directive, if present and valid.
func (cc CacheControl) MaxAge() (int64, bool) {
	v, ok := cc.Directives["max-age"]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String reconstructs the wire form in original directive order.
func (cc CacheControl) String() string {
	parts := make([]string, 0, len(cc.Order))
	for _, name := range cc.Order {
		v := cc.Directives[name]
		if v == "" {
			parts = append(parts, name)
			continue
		}
		if needsQuoting(v) {
			parts = append(parts, name+`="`+strings.ReplaceAll(v, `"`, `\"`)+`"`)
		} else {
			parts = append(parts, name+"="+v)
		}
	}
	return strings.Join(parts, ", ")
}
