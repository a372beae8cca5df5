// Package codec implements the sans-I/O HTTP/1.1 encoder and incremental
// decoder. Encoding is a pure function from message.Request/message.Response
// to bytes; decoding is a restartable state machine that consumes whatever
// bytes the caller has on hand and reports completion, need-more-data, or a
// typed error. Neither side performs I/O.
package codec

import (
	"strconv"
	"sync"

	"github.com/shapestone/shape-httpcodec/message"
)

// bufPool pools the []byte slices used by the encoder fast path, following
// the teacher's pkg/http/marshal.go pooling idiom.
var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 2048)
		return &b
	},
}

// reasonPhrases gives the standard reason phrase for well-known status
// codes, used when ReasonPhrase is empty.
var reasonPhrases = map[int]string{
	100: "Continue", 101: "Switching Protocols",
	200: "OK", 201: "Created", 202: "Accepted", 204: "No Content", 206: "Partial Content",
	301: "Moved Permanently", 302: "Found", 303: "See Other", 304: "Not Modified",
	307: "Temporary Redirect", 308: "Permanent Redirect",
	400: "Bad Request", 401: "Unauthorized", 403: "Forbidden", 404: "Not Found",
	405: "Method Not Allowed", 406: "Not Acceptable", 409: "Conflict", 410: "Gone",
	411: "Length Required", 412: "Precondition Failed", 413: "Content Too Large",
	415: "Unsupported Media Type", 416: "Range Not Satisfiable", 429: "Too Many Requests",
	500: "Internal Server Error", 501: "Not Implemented", 502: "Bad Gateway",
	503: "Service Unavailable", 504: "Gateway Timeout",
}

// EncodeRequest serializes req to HTTP/1.1 wire format: request-line, each
// header in insertion order, a blank line, then the body. It does not
// inject Content-Length, Host, or date headers — the caller sets those.
func EncodeRequest(req *message.Request) ([]byte, error) {
	if !isTokenLocal(req.Method) {
		return nil, message.NewInvalidData("request method is not a token")
	}
	if req.Target == "" {
		return nil, message.NewInvalidData("request target is empty")
	}
	version := req.Version
	if version == "" {
		version = "HTTP/1.1"
	}

	bp := bufPool.Get().(*[]byte)
	buf := (*bp)[:0]

	buf = append(buf, req.Method...)
	buf = append(buf, ' ')
	buf = append(buf, req.Target...)
	buf = append(buf, ' ')
	buf = append(buf, version...)
	buf = appendCRLF(buf)

	var err error
	buf, err = appendHeaders(buf, req.Headers)
	if err != nil {
		*bp = buf[:0]
		bufPool.Put(bp)
		return nil, err
	}
	buf = appendCRLF(buf)
	buf = append(buf, req.Body...)

	return finishBuf(bp, buf), nil
}

// EncodeResponse serializes resp to HTTP/1.1 wire format. ReasonPhrase
// defaults to the standard phrase for well-known codes when empty.
func EncodeResponse(resp *message.Response) ([]byte, error) {
	if resp.StatusCode < 100 || resp.StatusCode > 599 {
		return nil, message.NewInvalidStatusCode("status code out of range")
	}
	version := resp.Version
	if version == "" {
		version = "HTTP/1.1"
	}
	reason := resp.ReasonPhrase
	if reason == "" {
		reason = reasonPhrases[resp.StatusCode]
	}

	bp := bufPool.Get().(*[]byte)
	buf := (*bp)[:0]

	buf = append(buf, version...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(resp.StatusCode), 10)
	buf = append(buf, ' ')
	buf = append(buf, reason...)
	buf = appendCRLF(buf)

	var err error
	buf, err = appendHeaders(buf, resp.Headers)
	if err != nil {
		*bp = buf[:0]
		bufPool.Put(bp)
		return nil, err
	}
	buf = appendCRLF(buf)
	buf = append(buf, resp.Body...)

	return finishBuf(bp, buf), nil
}

func finishBuf(bp *[]byte, buf []byte) []byte {
	result := make([]byte, len(buf))
	copy(result, buf)
	*bp = buf[:0]
	bufPool.Put(bp)
	return result
}

func appendCRLF(buf []byte) []byte { return append(buf, '\r', '\n') }

func appendHeaders(buf []byte, headers message.Headers) ([]byte, error) {
	for _, h := range headers {
		if !isTokenLocal(h.Name) {
			return buf, message.NewInvalidHeaderValue("header name is not a token: " + h.Name)
		}
		if err := validateValueLocal(h.Value); err != nil {
			return buf, err
		}
		buf = append(buf, h.Name...)
		buf = append(buf, ':', ' ')
		buf = append(buf, h.Value...)
		buf = appendCRLF(buf)
	}
	return buf, nil
}

func isTokenLocal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x21 || b > 0x7E {
			return false
		}
		switch b {
		case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=', '{', '}':
			return false
		}
	}
	return true
}

func validateValueLocal(v string) error {
	for i := 0; i < len(v); i++ {
		b := v[i]
		if b == '\r' || b == '\n' {
			return message.NewInvalidHeaderValue("header value contains CR or LF")
		}
		if !(b == '\t' || b == ' ' || (b >= 0x21 && b <= 0x7E) || b >= 0x80) {
			return message.NewInvalidHeaderValue("header value contains disallowed byte")
		}
	}
	return nil
}
