package headerval

import (
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// Host is the parsed value of a Host header: "host[:port]" per RFC 9110
// §7.2, including the bracketed IPv6-literal form.
type Host struct {
	Name string // always ASCII on return; internationalized names are punycoded
	Port string // empty if absent
}

// ParseHost validates and normalizes a Host header value. Internationalized
// domain names are converted to their ASCII (punycode) form via
// golang.org/x/net/idna, matching the conversion the teacher's own
// Request.Host doc comment points callers at.
func ParseHost(s string) (Host, error) {
	if s == "" {
		return Host{}, errInvalid("empty Host header")
	}

	var name, port string
	if s[0] == '[' {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return Host{}, errInvalid("unterminated IPv6 literal in Host header")
		}
		name = s[:end+1]
		rest := s[end+1:]
		if rest != "" {
			if rest[0] != ':' {
				return Host{}, errInvalid("unexpected text after IPv6 literal in Host header")
			}
			port = rest[1:]
		}
	} else if colon := strings.LastIndexByte(s, ':'); colon >= 0 {
		name = s[:colon]
		port = s[colon+1:]
	} else {
		name = s
	}

	if port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return Host{}, errInvalid("Host port is not numeric")
		}
	}

	ascii, err := toASCIIHost(name)
	if err != nil {
		return Host{}, errInvalid("invalid internationalized Host name: " + err.Error())
	}

	return Host{Name: ascii, Port: port}, nil
}

// String reconstructs the wire form of h.
func (h Host) String() string {
	if h.Port == "" {
		return h.Name
	}
	return h.Name + ":" + h.Port
}

func toASCIIHost(name string) (string, error) {
	if name == "" || name[0] == '[' || isASCII(name) {
		return name, nil
	}
	return idna.Lookup.ToASCII(name)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
