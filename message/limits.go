package message

import "math"

// Default limit values, chosen to absorb a realistic single request/response
// while bounding memory against a hostile peer.
const (
	DefaultMaxBufferSize     = 65536
	DefaultMaxHeadersCount   = 100
	DefaultMaxHeaderLineSize = 8192
	DefaultMaxBodySize       = 10485760
)

// DecoderLimits bounds the resources a single decoder instance may consume.
// It is captured by value at decoder construction and never mutated after.
type DecoderLimits struct {
	MaxBufferSize     int64
	MaxHeadersCount   int64
	MaxHeaderLineSize int64
	MaxBodySize       int64
}

// DefaultLimits returns the conservative defaults used when a decoder is
// constructed without explicit limits.
func DefaultLimits() DecoderLimits {
	return DecoderLimits{
		MaxBufferSize:     DefaultMaxBufferSize,
		MaxHeadersCount:   DefaultMaxHeadersCount,
		MaxHeaderLineSize: DefaultMaxHeaderLineSize,
		MaxBodySize:       DefaultMaxBodySize,
	}
}

// UnlimitedLimits returns a sentinel configuration with every threshold set
// to the maximum representable value. It exists for tests that need to
// exercise parsing without tripping resource limits.
func UnlimitedLimits() DecoderLimits {
	return DecoderLimits{
		MaxBufferSize:     math.MaxInt64,
		MaxHeadersCount:   math.MaxInt64,
		MaxHeaderLineSize: math.MaxInt64,
		MaxBodySize:       math.MaxInt64,
	}
}
