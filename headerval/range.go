package headerval

import (
	"strconv"
	"strings"

	"github.com/shapestone/shape-httpcodec/internal/wireutil"
)

// ByteRangeSpec is one "first-byte-pos-last-byte-pos" or suffix range.
// HasFirst is false only for a suffix-range ("-500"); HasLast is false for
// an open-ended range ("500-").
type ByteRangeSpec struct {
	First, Last    int64
	HasFirst       bool
	HasLast        bool
}

// Range is a parsed Range header: a unit (any token, typically "bytes") and
// a list of byte-range-specs.
type Range struct {
	Unit   string
	Ranges []ByteRangeSpec
}

// ParseRange parses "bytes=0-499,500-999,-500".
func ParseRange(s string) (Range, error) {
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return Range{}, errInvalid("Range missing unit separator")
	}
	unit := wireutil.TrimOWSString(s[:eq])
	if !wireutil.IsToken(unit) {
		return Range{}, errInvalid("Range unit is not a token")
	}
	var out Range
	out.Unit = unit
	for _, part := range strings.Split(s[eq+1:], ",") {
		part = wireutil.TrimOWSString(part)
		if part == "" {
			continue
		}
		dash := strings.IndexByte(part, '-')
		if dash < 0 {
			return Range{}, errInvalid("byte-range-spec missing '-'")
		}
		firstStr, lastStr := part[:dash], part[dash+1:]
		var spec ByteRangeSpec
		if firstStr != "" {
			n, err := strconv.ParseInt(firstStr, 10, 64)
			if err != nil || n < 0 {
				return Range{}, errInvalid("invalid first-byte-pos")
			}
			spec.First, spec.HasFirst = n, true
		}
		if lastStr != "" {
			n, err := strconv.ParseInt(lastStr, 10, 64)
			if err != nil || n < 0 {
				return Range{}, errInvalid("invalid last-byte-pos")
			}
			spec.Last, spec.HasLast = n, true
		}
		if !spec.HasFirst && !spec.HasLast {
			return Range{}, errInvalid("empty byte-range-spec")
		}
		if spec.HasFirst && spec.HasLast && spec.First > spec.Last {
			return Range{}, errInvalid("first-byte-pos exceeds last-byte-pos")
		}
		out.Ranges = append(out.Ranges, spec)
	}
	if len(out.Ranges) == 0 {
		return Range{}, errInvalid("Range has no byte-range-sets")
	}
	return out, nil
}

// String reconstructs the wire form.
func (r Range) String() string {
	parts := make([]string, len(r.Ranges))
	for i, spec := range r.Ranges {
		var b strings.Builder
		if spec.HasFirst {
			b.WriteString(strconv.FormatInt(spec.First, 10))
		}
		b.WriteByte('-')
		if spec.HasLast {
			b.WriteString(strconv.FormatInt(spec.Last, 10))
		}
		parts[i] = b.String()
	}
	return r.Unit + "=" + strings.Join(parts, ",")
}

// ContentRange is a parsed Content-Range response header value, e.g.
// "bytes 0-499/1234" or "bytes */1234" (unsatisfied-range) or
// "bytes 0-499/*" (unknown complete length).
type ContentRange struct {
	Unit           string
	HasRange       bool
	First, Last    int64
	HasCompleteLen bool
	CompleteLen    int64
}

// ParseContentRange parses the Content-Range value described above.
func ParseContentRange(s string) (ContentRange, error) {
	sp := strings.IndexByte(s, ' ')
	if sp < 0 {
		return ContentRange{}, errInvalid("Content-Range missing unit")
	}
	unit := wireutil.TrimOWSString(s[:sp])
	if !wireutil.IsToken(unit) {
		return ContentRange{}, errInvalid("Content-Range unit is not a token")
	}
	rest := wireutil.TrimOWSString(s[sp+1:])
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return ContentRange{}, errInvalid("Content-Range missing '/'")
	}
	rangePart, lenPart := rest[:slash], rest[slash+1:]

	cr := ContentRange{Unit: unit}
	if rangePart != "*" {
		dash := strings.IndexByte(rangePart, '-')
		if dash < 0 {
			return ContentRange{}, errInvalid("Content-Range missing '-'")
		}
		first, err1 := strconv.ParseInt(rangePart[:dash], 10, 64)
		last, err2 := strconv.ParseInt(rangePart[dash+1:], 10, 64)
		if err1 != nil || err2 != nil || first < 0 || last < first {
			return ContentRange{}, errInvalid("invalid Content-Range range")
		}
		cr.HasRange, cr.First, cr.Last = true, first, last
	}
	if lenPart != "*" {
		n, err := strconv.ParseInt(lenPart, 10, 64)
		if err != nil || n < 0 {
			return ContentRange{}, errInvalid("invalid Content-Range complete-length")
		}
		cr.HasCompleteLen, cr.CompleteLen = true, n
	}
	return cr, nil
}

// String reconstructs the wire form.
func (cr ContentRange) String() string {
	var b strings.Builder
	b.WriteString(cr.Unit)
	b.WriteByte(' ')
	if cr.HasRange {
		b.WriteString(strconv.FormatInt(cr.First, 10))
		b.WriteByte('-')
		b.WriteString(strconv.FormatInt(cr.Last, 10))
	} else {
		b.WriteByte('*')
	}
	b.WriteByte('/')
	if cr.HasCompleteLen {
		b.WriteString(strconv.FormatInt(cr.CompleteLen, 10))
	} else {
		b.WriteByte('*')
	}
	return b.String()
}

// AcceptRanges is a parsed Accept-Ranges value: a list of range units, or
// the single token "none".
type AcceptRanges []string

// ParseAcceptRanges splits a comma-separated unit list.
func ParseAcceptRanges(s string) (AcceptRanges, error) {
	tokens := wireutil.SplitComma(s)
	out := make(AcceptRanges, 0, len(tokens))
	for _, t := range tokens {
		t = wireutil.TrimOWSString(t)
		if t == "" {
			continue
		}
		if !wireutil.IsToken(t) {
			return nil, errInvalid("range unit is not a token")
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, errInvalid("empty Accept-Ranges")
	}
	return out, nil
}

func (a AcceptRanges) String() string { return strings.Join(a, ", ") }
