package codec

import (
	"github.com/shapestone/shape-httpcodec/internal/wireutil"
	"github.com/shapestone/shape-httpcodec/message"
)

// bodyMode records which RFC 9112 §6.1 framing rule governs the current
// message's body.
type bodyMode int

const (
	bodyModeNone bodyMode = iota
	bodyModeLength
	bodyModeChunked
	bodyModeUntilClose
)

// decoderCore is the buffer + state machine shared by RequestDecoder and
// ResponseDecoder. It is parameterized by the isResponse flag rather than
// by inheritance: the two decoder types each provide their own start-line
// parsing and message assembly, and delegate everything else — buffering,
// header parsing, limit enforcement, body framing, chunk decoding — to this
// value. See the package's parent doc comment and SPEC_FULL.md §6.5.
type decoderCore struct {
	limits  message.DecoderLimits
	lenient bool

	buf   []byte
	state decodeState
	err   *message.HttpError
	line  int // 1-indexed count of lines fully consumed so far in the current message

	headers message.Headers

	bodyBuf       []byte
	mode          bodyMode
	bodyRemaining int64 // bytes left in a fixed-length body, or in the current chunk
	eofSignaled   bool

	isResponse bool

	// request-specific
	reqMethod  string
	reqTarget  string
	reqVersion string

	// response-specific
	respVersion    string
	respStatusCode int
	respReason     string

	// set by ResponseDecoder before decoding, to resolve the HEAD no-body rule
	requestMethod string
}

func newDecoderCore(limits message.DecoderLimits, isResponse bool) *decoderCore {
	return &decoderCore{
		limits:        limits,
		state:         stateIdle,
		isResponse:    isResponse,
		requestMethod: "GET",
	}
}

// feed appends data to the live buffer, enforcing max_buffer_size against
// the portion of the buffer not yet committed elsewhere (body bytes are
// sliced out of buf as soon as they are copied into bodyBuf, so len(buf)
// always reflects only the still-unparsed prefix).
func (d *decoderCore) feed(data []byte) error {
	if d.err != nil {
		return d.err
	}
	newSize := int64(len(d.buf) + len(data))
	if newSize > d.limits.MaxBufferSize {
		return d.fail(message.NewBufferOverflow(newSize, d.limits.MaxBufferSize))
	}
	d.buf = append(d.buf, data...)
	return nil
}

func (d *decoderCore) feedEOF() error {
	if d.err != nil {
		return d.err
	}
	switch d.state {
	case stateIdle:
		d.eofSignaled = true
		return nil
	case stateBodyUntilClose:
		d.eofSignaled = true
		return nil
	default:
		return d.fail(message.NewUnexpectedEOF("feed_eof in a state that requires more bytes"))
	}
}

// reset returns the decoder to stateIdle, including recovery from
// stateFailed — per spec.md §4.5, reset() is the only way out of Failed.
// Buffered bytes in buf are preserved so a pipelined next message already
// read into the buffer is not lost.
func (d *decoderCore) reset() {
	d.state = stateIdle
	d.err = nil
	d.headers = nil
	d.bodyBuf = nil
	d.mode = bodyModeNone
	d.bodyRemaining = 0
	d.eofSignaled = false
	d.reqMethod, d.reqTarget, d.reqVersion = "", "", ""
	d.respVersion, d.respReason = "", ""
	d.respStatusCode = 0
	d.line = 0
}

func (d *decoderCore) remaining() []byte {
	out := make([]byte, len(d.buf))
	copy(out, d.buf)
	return out
}

func (d *decoderCore) fail(err *message.HttpError) error {
	d.state = stateFailed
	d.err = err
	return err
}

// failLine fails the decoder with a KindInvalidData error tagged to the
// given 1-indexed line, for sites where the offending line is known.
func (d *decoderCore) failLine(detail string, line int) error {
	return d.fail(message.NewInvalidDataAtLine(detail, line))
}

// consume drops n bytes from the front of buf; body bytes must be copied
// out before calling this so they are never lost.
func (d *decoderCore) consume(n int) {
	d.buf = d.buf[n:]
}

// findLineEnd returns the offset of the line terminator's first byte and
// its length (1 for bare LF, 2 for CRLF), or (-1, 0) if no terminator is in
// buf yet. Bare LF is only accepted when d.lenient is set.
func (d *decoderCore) findLineEnd(buf []byte) (int, int) {
	for i := 0; i < len(buf); i++ {
		if buf[i] == '\n' {
			if i > 0 && buf[i-1] == '\r' {
				return i - 1, 2
			}
			if d.lenient {
				return i, 1
			}
			// Strict mode: a bare LF is itself a framing violation once seen.
			return i, 1
		}
	}
	return -1, 0
}

// readLine returns the next CRLF-terminated line from buf (without the
// terminator) and advances past it. ok is false if no full line is
// available yet. It enforces max_header_line_size against the unterminated
// prefix so an attacker cannot stall the decoder with an endless line.
func (d *decoderCore) readLine() (line []byte, ok bool, err error) {
	end, termLen := d.findLineEnd(d.buf)
	if end < 0 {
		if int64(len(d.buf)) > d.limits.MaxHeaderLineSize {
			return nil, false, d.fail(message.NewHeaderLineTooLong(int64(len(d.buf)), d.limits.MaxHeaderLineSize))
		}
		return nil, false, nil
	}
	if int64(end) > d.limits.MaxHeaderLineSize {
		return nil, false, d.fail(message.NewHeaderLineTooLong(int64(end), d.limits.MaxHeaderLineSize))
	}
	if termLen == 1 && !d.lenient {
		return nil, false, d.failLine("bare LF line ending in strict mode", d.line+1)
	}
	line = d.buf[:end]
	d.consume(end + termLen)
	d.line++
	return line, true, nil
}

// appendHeader validates and appends one header, enforcing max_headers_count.
func (d *decoderCore) appendHeader(name, value string) error {
	d.headers = append(d.headers, message.Header{Name: name, Value: value})
	if int64(len(d.headers)) > d.limits.MaxHeadersCount {
		return d.fail(message.NewTooManyHeaders(int64(len(d.headers)), d.limits.MaxHeadersCount))
	}
	return nil
}

// runHeaders consumes header lines from buf until the blank line, appending
// each to d.headers. Returns ok=false if more data is needed.
func (d *decoderCore) runHeaders() (ok bool, err error) {
	for {
		if len(d.buf) > 0 && (d.buf[0] == ' ' || d.buf[0] == '\t') {
			return false, d.fail(message.NewInvalidHeaderValue("obs-fold line continuation is rejected"))
		}
		// Peek for the blank line without consuming, so a partial read of
		// just "\r" doesn't get misread as a header line.
		if end, termLen := d.findLineEnd(d.buf); end == 0 {
			if termLen == 1 && !d.lenient {
				return false, d.failLine("bare LF line ending in strict mode", d.line+1)
			}
			d.consume(termLen)
			d.line++
			return true, nil
		}

		line, ok, err := d.readLine()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		colon := indexByte(line, ':')
		if colon < 0 {
			return false, d.failLine("header line missing colon", d.line)
		}
		nameBytes := line[:colon]
		if !wireutil.IsToken(string(nameBytes)) {
			return false, d.fail(message.NewInvalidHeaderValue("header name is not a token"))
		}
		valueBytes := wireutil.TrimOWS(line[colon+1:])
		for _, b := range valueBytes {
			if !wireutil.IsFieldValueByte(b) {
				return false, d.fail(message.NewInvalidHeaderValue("header value has disallowed byte"))
			}
		}
		name := wireutil.InternHeaderName(nameBytes)
		value := string(valueBytes)
		if err := d.appendHeader(name, value); err != nil {
			return false, err
		}
	}
}

func indexByte(b []byte, c byte) int {
	for i := 0; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// decideBodyFraming implements the RFC 9112 §6.1 ordering from spec.md §4.5.
func (d *decoderCore) decideBodyFraming() error {
	te, hasTE := d.headers.Get("Transfer-Encoding")
	isChunked := false
	if hasTE {
		tokens := wireutil.SplitComma(te)
		if len(tokens) > 0 {
			last := wireutil.TrimOWSString(tokens[len(tokens)-1])
			isChunked = wireutil.EqualFold(last, "chunked")
		}
	}

	clValues := d.headers.Values("Content-Length")
	hasCL := len(clValues) > 0
	var clValue int64
	if hasCL {
		first := wireutil.TrimOWSString(clValues[0])
		for _, v := range clValues[1:] {
			if wireutil.TrimOWSString(v) != first {
				return d.fail(message.NewInvalidData("conflicting Content-Length values"))
			}
		}
		n, err := wireutil.ParseDecimal(first)
		if err != nil {
			return d.fail(message.NewInvalidData("invalid Content-Length value"))
		}
		clValue = n
	}

	// Responses to HEAD, 1xx, 204 and 304 end at the blank line whatever
	// their framing headers say (RFC 9112 §6.3).
	if d.isResponse {
		noBody := d.respStatusCode >= 100 && d.respStatusCode < 200
		noBody = noBody || d.respStatusCode == 204 || d.respStatusCode == 304
		noBody = noBody || wireutil.EqualFold(d.requestMethod, "HEAD")
		if noBody {
			d.mode = bodyModeNone
			d.state = stateDone
			return nil
		}
	}

	if isChunked {
		if hasCL {
			return d.fail(message.NewInvalidData("Content-Length and Transfer-Encoding: chunked both present"))
		}
		d.mode = bodyModeChunked
		d.state = stateBodyChunkSize
		return nil
	}

	if hasCL {
		d.mode = bodyModeLength
		d.bodyRemaining = clValue
		if clValue == 0 {
			d.state = stateDone
		} else {
			d.state = stateBodyLength
		}
		return nil
	}

	if d.isResponse {
		d.mode = bodyModeUntilClose
		d.state = stateBodyUntilClose
		return nil
	}

	// Requests with neither header have no body.
	d.mode = bodyModeNone
	d.state = stateDone
	return nil
}

// runBody advances whichever body mode is active as far as the currently
// buffered bytes allow.
func (d *decoderCore) runBody() (ok bool, err error) {
	switch d.state {
	case stateBodyLength:
		return d.runBodyLength()
	case stateBodyChunkSize:
		return d.runChunkSize()
	case stateBodyChunkData:
		return d.runChunkData()
	case stateBodyChunkCRLF:
		return d.runChunkCRLF()
	case stateBodyTrailer:
		return d.runTrailer()
	case stateBodyUntilClose:
		return d.runUntilClose()
	default:
		return true, nil
	}
}

func (d *decoderCore) runBodyLength() (bool, error) {
	take := int64(len(d.buf))
	if take > d.bodyRemaining {
		take = d.bodyRemaining
	}
	if take > 0 {
		d.bodyBuf = append(d.bodyBuf, d.buf[:take]...)
		d.consume(int(take))
		d.bodyRemaining -= take
		if int64(len(d.bodyBuf)) > d.limits.MaxBodySize {
			return false, d.fail(message.NewBodyTooLarge(int64(len(d.bodyBuf)), d.limits.MaxBodySize))
		}
	}
	if d.bodyRemaining == 0 {
		d.state = stateDone
		return true, nil
	}
	return false, nil
}

func (d *decoderCore) runChunkSize() (bool, error) {
	line, ok, err := d.readLine()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if semi := indexByte(line, ';'); semi >= 0 {
		line = line[:semi]
	}
	line = wireutil.TrimOWS(line)
	size, perr := wireutil.ParseHexSize(line)
	if perr != nil {
		return false, d.fail(message.NewInvalidChunkSize(perr.Error()))
	}
	if size == 0 {
		d.state = stateBodyTrailer
		return d.runTrailer()
	}
	d.bodyRemaining = size
	d.state = stateBodyChunkData
	return d.runChunkData()
}

func (d *decoderCore) runChunkData() (bool, error) {
	take := int64(len(d.buf))
	if take > d.bodyRemaining {
		take = d.bodyRemaining
	}
	if take > 0 {
		d.bodyBuf = append(d.bodyBuf, d.buf[:take]...)
		d.consume(int(take))
		d.bodyRemaining -= take
		if int64(len(d.bodyBuf)) > d.limits.MaxBodySize {
			return false, d.fail(message.NewBodyTooLarge(int64(len(d.bodyBuf)), d.limits.MaxBodySize))
		}
	}
	if d.bodyRemaining > 0 {
		return false, nil
	}
	d.state = stateBodyChunkCRLF
	return d.runChunkCRLF()
}

func (d *decoderCore) runChunkCRLF() (bool, error) {
	if len(d.buf) < 1 {
		return false, nil
	}
	if d.buf[0] == '\r' {
		if len(d.buf) < 2 {
			return false, nil
		}
		if d.buf[1] != '\n' {
			return false, d.fail(message.NewInvalidChunkSize("expected CRLF after chunk data"))
		}
		d.consume(2)
	} else if d.buf[0] == '\n' {
		if !d.lenient {
			return false, d.fail(message.NewInvalidChunkSize("expected CRLF after chunk data"))
		}
		d.consume(1)
	} else {
		return false, d.fail(message.NewInvalidChunkSize("expected CRLF after chunk data"))
	}
	d.state = stateBodyChunkSize
	return d.runChunkSize()
}

// runTrailer parses the optional trailer section after the zero chunk,
// using the same rules and limits as the main header block, then completes.
func (d *decoderCore) runTrailer() (bool, error) {
	for {
		if len(d.buf) > 0 && (d.buf[0] == ' ' || d.buf[0] == '\t') {
			return false, d.fail(message.NewInvalidHeaderValue("obs-fold line continuation is rejected"))
		}
		if end, termLen := d.findLineEnd(d.buf); end == 0 {
			if termLen == 1 && !d.lenient {
				return false, d.failLine("bare LF line ending in strict mode", d.line+1)
			}
			d.consume(termLen)
			d.line++
			d.state = stateDone
			return true, nil
		}
		line, ok, err := d.readLine()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		colon := indexByte(line, ':')
		if colon < 0 {
			return false, d.failLine("trailer line missing colon", d.line)
		}
		name := wireutil.InternHeaderName(line[:colon])
		if !wireutil.IsToken(name) {
			return false, d.fail(message.NewInvalidHeaderValue("trailer name is not a token"))
		}
		valueBytes := wireutil.TrimOWS(line[colon+1:])
		for _, b := range valueBytes {
			if !wireutil.IsFieldValueByte(b) {
				return false, d.fail(message.NewInvalidHeaderValue("trailer value has disallowed byte"))
			}
		}
		value := string(valueBytes)
		if err := d.appendHeader(name, value); err != nil {
			return false, err
		}
	}
}

func (d *decoderCore) runUntilClose() (bool, error) {
	if len(d.buf) > 0 {
		d.bodyBuf = append(d.bodyBuf, d.buf...)
		d.consume(len(d.buf))
		if int64(len(d.bodyBuf)) > d.limits.MaxBodySize {
			return false, d.fail(message.NewBodyTooLarge(int64(len(d.bodyBuf)), d.limits.MaxBodySize))
		}
	}
	if d.eofSignaled {
		d.state = stateDone
		return true, nil
	}
	return false, nil
}
