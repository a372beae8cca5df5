package codec

import "testing"

// FuzzRequestDecoder feeds arbitrary bytes at the request decoder. The only
// invariant under fuzzing is that the decoder never panics: any input is
// either accepted, reported as incomplete, or rejected with an *message.HttpError.
func FuzzRequestDecoder(f *testing.F) {
	seeds := [][]byte{
		[]byte("GET / HTTP/1.1\r\nHost: example.com\r\n\r\n"),
		[]byte("POST /x HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"),
		[]byte("PUT /x HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\n\r\n"),
		[]byte("GET / HTTP/1.1\r\n\r\n"),
		[]byte(""),
		[]byte("\r\n\r\n"),
		[]byte("GET / HTTP/1.1\nHost: h\n\n"),
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		dec := NewRequestDecoder()
		_ = dec.Feed(data) // panics, not errors, fail the fuzz run
		_, _, _ = dec.Decode()
		_ = dec.FeedEOF()
		_, _, _ = dec.Decode()
	})
}

// FuzzResponseDecoder mirrors FuzzRequestDecoder for the response side.
func FuzzResponseDecoder(f *testing.F) {
	seeds := [][]byte{
		[]byte("HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok"),
		[]byte("HTTP/1.1 204 No Content\r\n\r\n"),
		[]byte("HTTP/1.1 100 Continue\r\n\r\nHTTP/1.1 200 OK\r\n\r\n"),
		[]byte(""),
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		dec := NewResponseDecoder()
		_ = dec.Feed(data)
		_, _, _ = dec.Decode()
		_ = dec.FeedEOF()
		_, _, _ = dec.Decode()
	})
}
