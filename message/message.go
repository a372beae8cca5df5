// Package message defines the HTTP/1.1 message model shared by the encoder
// and decoder: Request, Response, an ordered case-insensitive header list,
// and the resource limits a decoder enforces. None of these types perform
// I/O; they are plain values owned by whoever holds them.
package message

import "strings"

// Header is a single name/value pair as it will appear on the wire. Name
// comparisons are ASCII case-insensitive; Value has already had OWS
// stripped from both ends.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered, repeatable list of header fields. Order of
// insertion is preserved; duplicate names are allowed since some fields
// (e.g. Set-Cookie) are only meaningful when repeated.
type Headers []Header

// Get returns the value of the first header matching name (case-insensitive)
// and whether it was found.
func (h Headers) Get(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Values returns every value for headers matching name, in insertion order.
func (h Headers) Values(name string) []string {
	var out []string
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			out = append(out, f.Value)
		}
	}
	return out
}

// Has reports whether any header matches name, case-insensitively.
func (h Headers) Has(name string) bool {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

// add appends a header without validating it; callers that accept
// caller-supplied strings should validate first via validateHeaderField.
func (h *Headers) add(name, value string) {
	*h = append(*h, Header{Name: name, Value: value})
}

// Request is a parsed or to-be-encoded HTTP/1.1 request.
type Request struct {
	Method  string
	Target  string
	Version string
	Headers Headers
	Body    []byte
}

// NewRequest constructs a request with version defaulted to HTTP/1.1, empty
// headers, and no body. method and target are not checked here; EncodeRequest
// rejects a method that is not a token or an empty target, matching the
// teacher's fail-fast-on-use posture.
func NewRequest(method, target string) *Request {
	return NewRequestWithVersion(method, target, "HTTP/1.1")
}

// NewRequestWithVersion is NewRequest with an explicit version string.
func NewRequestWithVersion(method, target, version string) *Request {
	return &Request{Method: method, Target: target, Version: version}
}

// Header validates and appends a header field. It fails with
// InvalidHeaderValue if name is not a token or value contains CR/LF or a
// byte outside HTAB|SP|VCHAR|obs-text.
func (r *Request) Header(name, value string) error {
	if err := validateHeaderField(name, value); err != nil {
		return err
	}
	r.Headers.add(name, value)
	return nil
}

// SetBody replaces the request body.
func (r *Request) SetBody(body []byte) { r.Body = body }

// GetHeader returns the first header value matching name.
func (r *Request) GetHeader(name string) (string, bool) { return r.Headers.Get(name) }

// HasHeader reports whether name is present.
func (r *Request) HasHeader(name string) bool { return r.Headers.Has(name) }

// ContentLength returns the single numeric Content-Length value, or -1 if
// absent. Decoders reject conflicting duplicate values before this is ever
// consulted; see codec.RequestDecoder.
func (r *Request) ContentLength() (int64, bool) { return contentLength(r.Headers) }

// IsChunked reports whether the last Transfer-Encoding token is "chunked".
func (r *Request) IsChunked() bool { return isChunked(r.Headers) }

// IsKeepAlive reports the connection persistence implied by Version and any
// Connection header: HTTP/1.1 defaults to true unless Connection: close;
// HTTP/1.0 defaults to false unless Connection: keep-alive.
func (r *Request) IsKeepAlive() bool { return isKeepAlive(r.Version, r.Headers) }

// Response is a parsed or to-be-encoded HTTP/1.1 response.
type Response struct {
	Version      string
	StatusCode   int
	ReasonPhrase string
	Headers      Headers
	Body         []byte
}

// NewResponse constructs a response with version defaulted to HTTP/1.1.
func NewResponse(statusCode int, reasonPhrase string) *Response {
	return &Response{Version: "HTTP/1.1", StatusCode: statusCode, ReasonPhrase: reasonPhrase}
}

// Header validates and appends a header field.
func (r *Response) Header(name, value string) error {
	if err := validateHeaderField(name, value); err != nil {
		return err
	}
	r.Headers.add(name, value)
	return nil
}

// SetBody replaces the response body.
func (r *Response) SetBody(body []byte) { r.Body = body }

// GetHeader returns the first header value matching name.
func (r *Response) GetHeader(name string) (string, bool) { return r.Headers.Get(name) }

// HasHeader reports whether name is present.
func (r *Response) HasHeader(name string) bool { return r.Headers.Has(name) }

// ContentLength returns the single numeric Content-Length value, or -1 if absent.
func (r *Response) ContentLength() (int64, bool) { return contentLength(r.Headers) }

// IsChunked reports whether the last Transfer-Encoding token is "chunked".
func (r *Response) IsChunked() bool { return isChunked(r.Headers) }

// IsKeepAlive reports connection persistence; see Request.IsKeepAlive.
func (r *Response) IsKeepAlive() bool { return isKeepAlive(r.Version, r.Headers) }

// IsInformational reports whether StatusCode is in 100-199.
func (r *Response) IsInformational() bool { return r.StatusCode >= 100 && r.StatusCode < 200 }

// IsSuccess reports whether StatusCode is in 200-299.
func (r *Response) IsSuccess() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// IsRedirect reports whether StatusCode is in 300-399.
func (r *Response) IsRedirect() bool { return r.StatusCode >= 300 && r.StatusCode < 400 }

// IsClientError reports whether StatusCode is in 400-499.
func (r *Response) IsClientError() bool { return r.StatusCode >= 400 && r.StatusCode < 500 }

// IsServerError reports whether StatusCode is in 500-599.
func (r *Response) IsServerError() bool { return r.StatusCode >= 500 && r.StatusCode < 600 }

func contentLength(h Headers) (int64, bool) {
	v, ok := h.Get("Content-Length")
	if !ok {
		return -1, false
	}
	n, err := parseDecimal(v)
	if err != nil {
		return -1, false
	}
	return n, true
}

func isChunked(h Headers) bool {
	v, ok := h.Get("Transfer-Encoding")
	if !ok {
		return false
	}
	tokens := splitTokenList(v)
	if len(tokens) == 0 {
		return false
	}
	return strings.EqualFold(tokens[len(tokens)-1], "chunked")
}

func isKeepAlive(version string, h Headers) bool {
	conn, hasConn := h.Get("Connection")
	switch version {
	case "HTTP/1.0":
		return hasConn && strings.EqualFold(strings.TrimSpace(conn), "keep-alive")
	default: // HTTP/1.1 and anything else defaults to persistent
		return !(hasConn && containsToken(conn, "close"))
	}
}

// splitTokenList splits a comma-separated header value into trimmed tokens.
func splitTokenList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsToken(v, token string) bool {
	for _, t := range splitTokenList(v) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}

// parseDecimal parses a non-negative base-10 integer with overflow checking.
// It is duplicated here (rather than imported from wireutil) to keep
// message a leaf package with no internal dependencies of its own; codec
// and headerval use the shared wireutil implementation.
func parseDecimal(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &HttpError{Kind: KindInvalidData, Detail: "empty integer"}
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, &HttpError{Kind: KindInvalidData, Detail: "not a decimal digit"}
		}
		d := int64(c - '0')
		if n > (1<<63-1-d)/10 {
			return 0, &HttpError{Kind: KindInvalidData, Detail: "integer overflow"}
		}
		n = n*10 + d
	}
	return n, nil
}
