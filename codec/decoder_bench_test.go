package codec

import (
	"testing"

	"github.com/shapestone/shape-httpcodec/message"
)

var benchRequestWire = []byte("POST /widgets HTTP/1.1\r\n" +
	"Host: example.com\r\n" +
	"Content-Type: application/json\r\n" +
	"Content-Length: 26\r\n" +
	"X-Trace-Id: 0123456789abcdef\r\n" +
	"\r\n" +
	`{"name":"widget","qty":12}`)

// BenchmarkDecodeWholeBuffer feeds the entire message in one Feed call,
// the common case for a read() that returns a full request.
func BenchmarkDecodeWholeBuffer(b *testing.B) {
	for i := 0; i < b.N; i++ {
		dec := NewRequestDecoder()
		if err := dec.Feed(benchRequestWire); err != nil {
			b.Fatal(err)
		}
		if _, ok, err := dec.Decode(); err != nil || !ok {
			b.Fatalf("ok=%v err=%v", ok, err)
		}
	}
}

// BenchmarkDecodeStreaming feeds the message in 16-byte fragments, the worst
// case for a decoder that re-scans from the start of its buffer on each call.
func BenchmarkDecodeStreaming(b *testing.B) {
	const chunk = 16
	for i := 0; i < b.N; i++ {
		dec := NewRequestDecoder()
		for off := 0; off < len(benchRequestWire); off += chunk {
			end := off + chunk
			if end > len(benchRequestWire) {
				end = len(benchRequestWire)
			}
			if err := dec.Feed(benchRequestWire[off:end]); err != nil {
				b.Fatal(err)
			}
			if _, _, err := dec.Decode(); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkEncodeRequest(b *testing.B) {
	req := message.NewRequest("POST", "/widgets")
	_ = req.Header("Host", "example.com")
	_ = req.Header("Content-Type", "application/json")
	_ = req.Header("Content-Length", "26")
	req.SetBody([]byte(`{"name":"widget","qty":12}`))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeRequest(req); err != nil {
			b.Fatal(err)
		}
	}
}
