package headerval

import (
	"encoding/base64"
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// DigestList is the parsed Structured-Fields Dictionary carried by a
// Content-Digest or Repr-Digest header (RFC 9530): one or more
// "algorithm=:base64:" members, each an sf-token key and an sf-binary
// value. Order is preserved (RFC 9530 §3 leaves algorithm preference and
// ordering to the sender), alongside a lookup map for the common case of
// checking one specific algorithm.
type DigestList struct {
	Order   []string
	Entries map[string][]byte
}

// ParseDigest parses a Content-Digest/Repr-Digest value.
func ParseDigest(s string) (DigestList, error) {
	dl := DigestList{Entries: make(map[string][]byte)}
	for _, part := range splitTopLevelComma(s) {
		part = wireutil.TrimOWSString(part)
		if part == "" {
			continue
		}
		eq := strings.IndexByte(part, '=')
		if eq < 0 {
			return DigestList{}, errInvalid("digest member missing '='")
		}
		name := strings.ToLower(wireutil.TrimOWSString(part[:eq]))
		if !wireutil.IsToken(name) {
			return DigestList{}, errInvalid("digest algorithm is not a token")
		}
		raw := wireutil.TrimOWSString(part[eq+1:])
		if len(raw) < 2 || raw[0] != ':' || raw[len(raw)-1] != ':' {
			return DigestList{}, errInvalid("digest value is not an sf-binary")
		}
		decoded, err := base64.StdEncoding.DecodeString(raw[1 : len(raw)-1])
		if err != nil {
			return DigestList{}, errInvalid("digest value is not valid base64")
		}
		if _, seen := dl.Entries[name]; !seen {
			dl.Order = append(dl.Order, name)
		}
		dl.Entries[name] = decoded
	}
	if len(dl.Order) == 0 {
		return DigestList{}, errInvalid("empty digest dictionary")
	}
	return dl, nil
}

// Get returns the decoded digest bytes for algorithm (case-insensitive).
func (dl DigestList) Get(algorithm string) ([]byte, bool) {
	v, ok := dl.Entries[strings.ToLower(algorithm)]
	return v, ok
}

// String reconstructs the wire form, base64-encoding each entry's bytes as
// an sf-binary member, in received order.
func (dl DigestList) String() string {
	parts := make([]string, len(dl.Order))
	for i, name := range dl.Order {
		parts[i] = name + "=:" + base64.StdEncoding.EncodeToString(dl.Entries[name]) + ":"
	}
	return strings.Join(parts, ", ")
}
