package codec

import (
	"github.com/shapestone/shape-httpcodec/internal/wireutil"
	"github.com/shapestone/shape-httpcodec/message"
)

// ResponseDecoder incrementally parses HTTP/1.1 responses from a byte
// stream. See SPEC_FULL.md §6.5 for the state machine and the interim
// (1xx) response delivery mode, which resolves an Open Question the
// reference left unspecified.
type ResponseDecoder struct {
	core *decoderCore
	// deliverInterim controls whether 1xx responses are surfaced to the
	// caller one at a time (true, the default) or skipped so Decode only
	// ever returns the final non-1xx response.
	deliverInterim bool
}

// NewResponseDecoder returns a decoder using DefaultLimits, strict mode,
// and per-response delivery of 1xx interim responses.
func NewResponseDecoder() *ResponseDecoder {
	return NewResponseDecoderWithLimits(message.DefaultLimits())
}

// NewResponseDecoderWithLimits returns a decoder using the given limits.
func NewResponseDecoderWithLimits(limits message.DecoderLimits) *ResponseDecoder {
	return &ResponseDecoder{core: newDecoderCore(limits, true), deliverInterim: true}
}

// WithLenient toggles acceptance of bare LF line endings.
func (d *ResponseDecoder) WithLenient(lenient bool) *ResponseDecoder {
	d.core.lenient = lenient
	return d
}

// WithInterimResponses sets whether 1xx responses are delivered individually
// (true, default) or silently skipped in favor of the final response (false).
func (d *ResponseDecoder) WithInterimResponses(deliver bool) *ResponseDecoder {
	d.deliverInterim = deliver
	return d
}

// SetRequestMethod tells the decoder which method the corresponding request
// used, so it can apply the "HEAD response has no body" framing rule. It
// defaults to GET and must be set before decoding each response.
func (d *ResponseDecoder) SetRequestMethod(method string) {
	d.core.requestMethod = method
}

// Feed appends bytes to the decoder's internal buffer.
func (d *ResponseDecoder) Feed(data []byte) error { return d.core.feed(data) }

// FeedEOF signals end of input; legal while Idle or in the until-close body state.
func (d *ResponseDecoder) FeedEOF() error { return d.core.feedEOF() }

// Reset clears decoder state back to Idle, preserving buffered bytes.
func (d *ResponseDecoder) Reset() { d.core.reset() }

// Remaining returns a copy of the unconsumed buffer contents.
func (d *ResponseDecoder) Remaining() []byte { return d.core.remaining() }

// Decode attempts to advance parsing as far as possible, returning the next
// complete response. When WithInterimResponses(false) is set, 1xx responses
// are parsed and discarded internally (the decoder auto-resets between
// them) so Decode only ever surfaces the final response.
func (d *ResponseDecoder) Decode() (*message.Response, bool, error) {
	for {
		resp, ok, err := d.decodeOne()
		if err != nil || !ok {
			return resp, ok, err
		}
		if d.deliverInterim || !resp.IsInformational() {
			return resp, true, nil
		}
		d.core.reset()
	}
}

func (d *ResponseDecoder) decodeOne() (*message.Response, bool, error) {
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
			resp := &message.Response{
				Version:      c.respVersion,
				StatusCode:   c.respStatusCode,
				ReasonPhrase: c.respReason,
				Headers:      c.headers,
				Body:         c.bodyBuf,
			}
			return resp, true, nil

		default:
			return nil, false, nil
		}
	}
}

// runStartLine parses "version SP 3DIGIT SP reason-phrase". Reason may be empty.
func (d *ResponseDecoder) runStartLine() (bool, error) {
	c := d.core
	line, ok, err := c.readLine()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	sp1 := indexByte(line, ' ')
	if sp1 < 0 {
		return false, c.failLine("malformed status line: missing version separator", c.line)
	}
	version := wireutil.InternVersion(line[:sp1])
	if !isHTTP11Or10(version) {
		return false, c.failLine("unsupported HTTP version: "+version, c.line)
	}

	rest := line[sp1+1:]
	var codeBytes, reasonBytes []byte
	if sp2 := indexByte(rest, ' '); sp2 >= 0 {
		codeBytes = rest[:sp2]
		reasonBytes = rest[sp2+1:]
	} else {
		codeBytes = rest
	}
	if len(codeBytes) != 3 {
		return false, c.fail(message.NewInvalidStatusCode("status code must be exactly 3 digits"))
	}
	code := 0
	for _, b := range codeBytes {
		if b < '0' || b > '9' {
			return false, c.fail(message.NewInvalidStatusCode("status code must be all digits"))
		}
		code = code*10 + int(b-'0')
	}
	if code < 100 || code > 599 {
		return false, c.fail(message.NewInvalidStatusCode("status code out of range 100-599"))
	}
	for _, b := range reasonBytes {
		if !(b == '\t' || b == ' ' || (b >= 0x21 && b <= 0x7E) || b >= 0x80) {
			return false, c.failLine("reason phrase contains disallowed byte", c.line)
		}
	}

	c.respVersion = version
	c.respStatusCode = code
	c.respReason = string(reasonBytes)
	c.state = stateHeaders
	return true, nil
}
