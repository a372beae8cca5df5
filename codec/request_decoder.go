package codec

import (
	"github.com/shapestone/shape-httpcodec/internal/wireutil"
	"github.com/shapestone/shape-httpcodec/message"
)

// RequestDecoder incrementally parses HTTP/1.1 requests from a byte stream.
// A single instance is not safe for concurrent use; each logical connection
// owns one. See SPEC_FULL.md §6.5 for the full state machine description.
type RequestDecoder struct {
	core *decoderCore
}

// NewRequestDecoder returns a decoder using DefaultLimits and strict mode.
func NewRequestDecoder() *RequestDecoder {
	return NewRequestDecoderWithLimits(message.DefaultLimits())
}

// NewRequestDecoderWithLimits returns a decoder using the given limits.
func NewRequestDecoderWithLimits(limits message.DecoderLimits) *RequestDecoder {
	return &RequestDecoder{core: newDecoderCore(limits, false)}
}

// WithLenient toggles acceptance of bare LF line endings. Default is strict
// (CRLF only); this must be called before the first Feed to take effect on
// the message currently in flight.
func (d *RequestDecoder) WithLenient(lenient bool) *RequestDecoder {
	d.core.lenient = lenient
	return d
}

// Feed appends bytes to the decoder's internal buffer.
func (d *RequestDecoder) Feed(data []byte) error { return d.core.feed(data) }

// FeedEOF signals end of input; legal only while Idle.
func (d *RequestDecoder) FeedEOF() error { return d.core.feedEOF() }

// Reset clears decoder state back to Idle, preserving any buffered bytes
// that belong to the next pipelined request.
func (d *RequestDecoder) Reset() { d.core.reset() }

// Remaining returns a copy of the unconsumed buffer contents.
func (d *RequestDecoder) Remaining() []byte { return d.core.remaining() }

// Decode attempts to advance parsing as far as possible. It returns
// (message, true, nil) on completion, (nil, false, nil) if more bytes are
// needed, or a non-nil error — which becomes sticky on the decoder.
func (d *RequestDecoder) Decode() (*message.Request, bool, error) {
	c := d.core
	if c.err != nil {
		return nil, false, c.err
	}

	for {
		switch c.state {
		case stateIdle:
			c.state = stateStartLine
			continue

		case stateStartLine:
			ok, err := d.runStartLine()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}
			continue

		case stateHeaders:
			ok, err := c.runHeaders()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}
			if err := c.decideBodyFraming(); err != nil {
				return nil, false, err
			}
			continue

		case stateBodyLength, stateBodyChunkSize, stateBodyChunkData, stateBodyChunkCRLF, stateBodyTrailer, stateBodyUntilClose:
			ok, err := c.runBody()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}
			continue

		case stateDone:
			req := &message.Request{
				Method:  c.reqMethod,
				Target:  c.reqTarget,
				Version: c.reqVersion,
				Headers: c.headers,
				Body:    c.bodyBuf,
			}
			return req, true, nil

		default:
			return nil, false, nil
		}
	}
}

// runStartLine skips RFC 9112 §2.2 leading blank lines, then parses
// "method SP target SP version".
func (d *RequestDecoder) runStartLine() (bool, error) {
	c := d.core
	for {
		if end, termLen := c.findLineEnd(c.buf); end == 0 {
			if termLen == 1 && !c.lenient {
				return false, c.failLine("bare LF line ending in strict mode", c.line+1)
			}
			c.consume(termLen)
			c.line++
			continue
		}
		break
	}

	line, ok, err := c.readLine()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	sp1 := indexByte(line, ' ')
	if sp1 < 0 {
		return false, c.failLine("malformed request line: missing method separator", c.line)
	}
	method := wireutil.InternMethod(line[:sp1])
	if !wireutil.IsToken(method) {
		return false, c.failLine("request method is not a token", c.line)
	}

	rest := line[sp1+1:]
	sp2 := indexByte(rest, ' ')
	if sp2 < 0 {
		return false, c.failLine("malformed request line: missing version separator", c.line)
	}
	target := string(rest[:sp2])
	if target == "" {
		return false, c.failLine("empty request target", c.line)
	}
	for i := 0; i < len(target); i++ {
		if !wireutil.IsVChar(target[i]) {
			return false, c.failLine("request target contains non-VCHAR byte", c.line)
		}
	}

	version := wireutil.InternVersion(rest[sp2+1:])
	if !isHTTP11Or10(version) {
		return false, c.failLine("unsupported HTTP version: "+version, c.line)
	}

	c.reqMethod = method
	c.reqTarget = target
	c.reqVersion = version
	c.state = stateHeaders
	return true, nil
}

func isHTTP11Or10(version string) bool {
	return version == "HTTP/1.1" || version == "HTTP/1.0"
}
