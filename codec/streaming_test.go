package codec

import (
	"bytes"
	"testing"
)

// feedByteAtATime drives feed across wire one byte at a time, calling
// decode after each byte, to assert streaming/chunk-boundary invariance:
// the result must not depend on how the bytes were chunked.
func feedByteAtATime(t *testing.T, wire []byte, feed func([]byte) error, decode func() (bool, error)) {
	t.Helper()
	for i := 0; i < len(wire); i++ {
		if err := feed(wire[i : i+1]); err != nil {
			t.Fatalf("Feed at byte %d: %v", i, err)
		}
		ok, err := decode()
		if err != nil {
			t.Fatalf("Decode at byte %d: %v", i, err)
		}
		if ok && i != len(wire)-1 {
			t.Fatalf("Decode completed early at byte %d of %d", i, len(wire))
		}
	}
}

func TestStreamingByteAtATimeRequest(t *testing.T) {
	req := mustRequest(t, "POST", "/x", [][2]string{
		{"Host", "example.com"},
		{"Content-Length", "11"},
	}, []byte("hello world"))
	wire, err := EncodeRequest(req)
	if err != nil {
		t.Fatalf("EncodeRequest: %v", err)
	}

	dec := NewRequestDecoder()
	var final bool
	feedByteAtATime(t, wire, dec.Feed, func() (bool, error) {
		_, ok, err := dec.Decode()
		if ok {
			final = true
		}
		return ok, err
	})
	if !final {
		t.Fatalf("expected decode to complete")
	}
}

func TestStreamingChunkedBoundaryInvariance(t *testing.T) {
	req := mustRequest(t, "PUT", "/x", [][2]string{
		{"Host", "example.com"},
		{"Transfer-Encoding", "chunked"},
	}, nil)
	head, _ := EncodeRequest(req)
	body := EncodeChunks([][]byte{[]byte("ab"), []byte("cde"), []byte("f")})
	wire := append(head, body...)

	// Whole-buffer decode.
	decWhole := NewRequestDecoder()
	if err := decWhole.Feed(wire); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	whole, ok, err := decWhole.Decode()
	if err != nil || !ok {
		t.Fatalf("whole-buffer decode: ok=%v err=%v", ok, err)
	}

	// Split at every possible boundary and confirm identical result.
	for split := 1; split < len(wire); split++ {
		dec := NewRequestDecoder()
		if err := dec.Feed(wire[:split]); err != nil {
			t.Fatalf("split %d: Feed first half: %v", split, err)
		}
		_, ok, err := dec.Decode()
		if err != nil {
			t.Fatalf("split %d: Decode first half: %v", split, err)
		}
		if ok {
			continue // some splits land exactly on completion; fine either way
		}
		if err := dec.Feed(wire[split:]); err != nil {
			t.Fatalf("split %d: Feed second half: %v", split, err)
		}
		got, ok, err := dec.Decode()
		if err != nil || !ok {
			t.Fatalf("split %d: Decode second half: ok=%v err=%v", split, ok, err)
		}
		if !bytes.Equal(got.Body, whole.Body) {
			t.Fatalf("split %d: body mismatch: got %q want %q", split, got.Body, whole.Body)
		}
	}
}

func TestPipeliningTwoRequests(t *testing.T) {
	req1 := mustRequest(t, "GET", "/one", [][2]string{{"Host", "example.com"}}, nil)
	req2 := mustRequest(t, "GET", "/two", [][2]string{{"Host", "example.com"}}, nil)
	w1, _ := EncodeRequest(req1)
	w2, _ := EncodeRequest(req2)
	combined := append(append([]byte{}, w1...), w2...)

	dec := NewRequestDecoder()
	if err := dec.Feed(combined); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	got1, ok, err := dec.Decode()
	if err != nil || !ok {
		t.Fatalf("Decode first: ok=%v err=%v", ok, err)
	}
	if got1.Target != "/one" {
		t.Fatalf("expected /one, got %q", got1.Target)
	}

	dec.Reset()
	got2, ok, err := dec.Decode()
	if err != nil || !ok {
		t.Fatalf("Decode second: ok=%v err=%v", ok, err)
	}
	if got2.Target != "/two" {
		t.Fatalf("expected /two, got %q", got2.Target)
	}
	if len(dec.Remaining()) != 0 {
		t.Fatalf("expected no bytes remaining, got %d", len(dec.Remaining()))
	}
}

func TestPipeliningPartialSecondRequest(t *testing.T) {
	req1 := mustRequest(t, "GET", "/one", [][2]string{{"Host", "example.com"}}, nil)
	req2 := mustRequest(t, "GET", "/two", [][2]string{{"Host", "example.com"}}, nil)
	w1, _ := EncodeRequest(req1)
	w2, _ := EncodeRequest(req2)

	dec := NewRequestDecoder()
	combined := append(append([]byte{}, w1...), w2[:len(w2)/2]...)
	if err := dec.Feed(combined); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	_, ok, err := dec.Decode()
	if err != nil || !ok {
		t.Fatalf("Decode first: ok=%v err=%v", ok, err)
	}
	dec.Reset()
	_, ok, err = dec.Decode()
	if err != nil {
		t.Fatalf("Decode second (partial): %v", err)
	}
	if ok {
		t.Fatalf("expected incomplete second request")
	}
	if err := dec.Feed(w2[len(w2)/2:]); err != nil {
		t.Fatalf("Feed rest: %v", err)
	}
	got2, ok, err := dec.Decode()
	if err != nil || !ok {
		t.Fatalf("Decode second (complete): ok=%v err=%v", ok, err)
	}
	if got2.Target != "/two" {
		t.Fatalf("expected /two, got %q", got2.Target)
	}
}
