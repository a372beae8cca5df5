package headerval

import "github.com/shapestone/shape-httpcodec/internal/wireutil"

// Age is the parsed value of an Age header: non-negative seconds.
type Age int64

// ParseAge parses a decimal Age value.
func ParseAge(s string) (Age, error) {
	n, err := wireutil.ParseDecimal(wireutil.TrimOWSString(s))
	if err != nil {
		return 0, errInvalid("Age is not a non-negative integer")
	}
	return Age(n), nil
}

// String formats the age as a decimal string.
func (a Age) String() string {
	return wireutil.FormatDecimal(int64(a))
}
