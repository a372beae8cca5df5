package headerval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// ContentLanguage is the ordered list of language tags describing the
// content's intended audience, as in "Content-Language: en, de".
type ContentLanguage []string

// ParseContentLanguage splits a comma-separated list of language tags.
func ParseContentLanguage(s string) (ContentLanguage, error) {
	tokens := wireutil.SplitComma(s)
	out := make(ContentLanguage, 0, len(tokens))
	for _, t := range tokens {
		t = wireutil.TrimOWSString(t)
		if t == "" {
			continue
		}
		if !isLanguageTag(t) {
			return nil, errInvalid("invalid language tag")
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, errInvalid("empty Content-Language")
	}
	return out, nil
}

func (c ContentLanguage) String() string { return strings.Join(c, ", ") }

// LanguageRange is one entry of an Accept-Language list: a language tag (or
// "*") with an optional quality value, defaulting to 1.0.
type LanguageRange struct {
	Tag     string
	Quality float64
}

// AcceptLanguage is an Accept-Language value, kept in the order received;
// callers that want RFC 9110 §12.5.4 "most specific wins" q-ranking sort by
// Quality themselves.
type AcceptLanguage []LanguageRange

// ParseAcceptLanguage parses "en-US;q=0.9, en;q=0.7, *;q=0.1" style values.
func ParseAcceptLanguage(s string) (AcceptLanguage, error) {
	tokens := wireutil.SplitComma(s)
	out := make(AcceptLanguage, 0, len(tokens))
	for _, t := range tokens {
		t = wireutil.TrimOWSString(t)
		if t == "" {
			continue
		}
		tag, q, err := splitQValue(t)
		if err != nil {
			return nil, err
		}
		if tag != "*" && !isLanguageTag(tag) {
			return nil, errInvalid("invalid language-range")
		}
		out = append(out, LanguageRange{Tag: tag, Quality: q})
	}
	if len(out) == 0 {
		return nil, errInvalid("empty Accept-Language")
	}
	return out, nil
}

func (a AcceptLanguage) String() string {
	parts := make([]string, len(a))
	for i, r := range a {
		parts[i] = formatQValue(r.Tag, r.Quality)
	}
	return strings.Join(parts, ", ")
}

func isLanguageTag(s string) bool {
	if s == "" {
		return false
	}
	for _, sub := range strings.Split(s, "-") {
		if sub == "" || len(sub) > 8 {
			return false
		}
		for i := 0; i < len(sub); i++ {
			c := sub[i]
			if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
				return false
			}
		}
	}
	return true
}

// splitQValue splits "token;q=0.5" into the token and its quality (default 1.0).
func splitQValue(s string) (string, float64, error) {
	semi := strings.IndexByte(s, ';')
	if semi < 0 {
		return s, 1.0, nil
	}
	tag := wireutil.TrimOWSString(s[:semi])
	rest := wireutil.TrimOWSString(s[semi+1:])
	if !strings.HasPrefix(strings.ToLower(rest), "q=") {
		return "", 0, errInvalid("expected q= parameter")
	}
	q, err := strconv.ParseFloat(rest[2:], 64)
	if err != nil || q < 0 || q > 1 {
		return "", 0, errInvalid("invalid q-value")
	}
	return tag, q, nil
}

func formatQValue(tag string, q float64) string {
	if q >= 1.0 {
		return tag
	}
	return fmt.Sprintf("%s;q=%s", tag, strconv.FormatFloat(q, 'g', -1, 64))
}
