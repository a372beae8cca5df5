package headerval

import (
	"strconv"
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// URI holds the decoded components of a URI reference as it appears in a
// request target, Location header, or similar header value.
type URI struct {
	Scheme   string
	User     string
	Password string
	HasUser  bool
	Host     string
	Port     string
	Path     string
	Query    string
	Fragment string
}

// ParseURI parses an absolute or relative URI reference. Percent-encoded
// octets in the userinfo, host, and path are decoded; the query string is
// kept encoded since its structure (key=value pairs) is caller-defined.
func ParseURI(s string) (URI, error) {
	var u URI
	rest := s

	if i := strings.Index(rest, "#"); i >= 0 {
		u.Fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.Index(rest, "?"); i >= 0 {
		u.Query = rest[i+1:]
		rest = rest[:i]
	}

	if i := strings.Index(rest, "://"); i >= 0 {
		u.Scheme = rest[:i]
		if !isValidScheme(u.Scheme) {
			return URI{}, errInvalid("invalid URI scheme")
		}
		rest = rest[i+3:]

		authorityEnd := len(rest)
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			authorityEnd = j
		}
		authority := rest[:authorityEnd]
		rest = rest[authorityEnd:]

		if at := strings.LastIndexByte(authority, '@'); at >= 0 {
			userinfo := authority[:at]
			authority = authority[at+1:]
			u.HasUser = true
			if colon := strings.IndexByte(userinfo, ':'); colon >= 0 {
				name, err := wireutil.PercentDecode(userinfo[:colon])
				if err != nil {
					return URI{}, errInvalid("invalid percent-encoding in userinfo")
				}
				pass, err := wireutil.PercentDecode(userinfo[colon+1:])
				if err != nil {
					return URI{}, errInvalid("invalid percent-encoding in userinfo")
				}
				u.User, u.Password = name, pass
			} else {
				name, err := wireutil.PercentDecode(userinfo)
				if err != nil {
					return URI{}, errInvalid("invalid percent-encoding in userinfo")
				}
				u.User = name
			}
		}

		host, port, err := splitHostPort(authority)
		if err != nil {
			return URI{}, err
		}
		u.Host, u.Port = host, port
	}

	if rest != "" {
		path, err := wireutil.PercentDecode(rest)
		if err != nil {
			return URI{}, errInvalid("invalid percent-encoding in path")
		}
		u.Path = path
	}

	return u, nil
}

// String reconstructs the wire form of u.
func (u URI) String() string {
	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteString("://")
		if u.HasUser {
			b.WriteString(wireutil.PercentEncode(u.User, wireutil.ShouldEscapePathByte))
			if u.Password != "" {
				b.WriteByte(':')
				b.WriteString(wireutil.PercentEncode(u.Password, wireutil.ShouldEscapePathByte))
			}
			b.WriteByte('@')
		}
		b.WriteString(u.Host)
		if u.Port != "" {
			b.WriteByte(':')
			b.WriteString(u.Port)
		}
	}
	b.WriteString(wireutil.PercentEncode(u.Path, wireutil.ShouldEscapePathByte))
	if u.Query != "" {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

func isValidScheme(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !isDigit && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func splitHostPort(authority string) (host, port string, err error) {
	if authority == "" {
		return "", "", nil
	}
	if authority[0] == '[' {
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return "", "", errInvalid("unterminated IPv6 literal in authority")
		}
		host = authority[:end+1]
		rest := authority[end+1:]
		if rest == "" {
			return host, "", nil
		}
		if rest[0] != ':' {
			return "", "", errInvalid("unexpected text after IPv6 literal")
		}
		port = rest[1:]
	} else if colon := strings.LastIndexByte(authority, ':'); colon >= 0 {
		host = authority[:colon]
		port = authority[colon+1:]
	} else {
		host = authority
	}
	if port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return "", "", errInvalid("port is not numeric")
		}
	}
	decodedHost, err := wireutil.PercentDecode(host)
	if err != nil {
		return "", "", errInvalid("invalid percent-encoding in host")
	}
	return decodedHost, port, nil
}
