package codec

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/shapestone/shape-httpcodec/message"
)

func kindOf(t *testing.T, err error) message.Kind {
	t.Helper()
	var he *message.HttpError
	if !errors.As(err, &he) {
		t.Fatalf("expected *message.HttpError, got %T: %v", err, err)
	}
	return he.Kind
}

func TestMaxHeaderLineSizeBoundary(t *testing.T) {
	limits := message.DefaultLimits()
	limits.MaxHeaderLineSize = 32

	line := "X-Pad: " + string(bytes.Repeat([]byte("a"), 25)) // name+sep+value == 32 bytes

	fitsReq := []byte("GET / HTTP/1.1\r\nHost: h\r\n" + line + "\r\n\r\n")
	dec := NewRequestDecoderWithLimits(limits)
	if err := dec.Feed(fitsReq); err != nil {
		t.Fatalf("Feed (at limit): %v", err)
	}
	if _, ok, err := dec.Decode(); err != nil || !ok {
		t.Fatalf("Decode (at limit): ok=%v err=%v", ok, err)
	}

	overLine := "X-Pad: " + string(bytes.Repeat([]byte("a"), 26)) // 33 bytes
	overReq := []byte("GET / HTTP/1.1\r\nHost: h\r\n" + overLine + "\r\n\r\n")
	dec2 := NewRequestDecoderWithLimits(limits)
	if err := dec2.Feed(overReq); err != nil {
		// buffer overflow is also an acceptable rejection path
		if kindOf(t, err) != message.KindHeaderLineTooLong && kindOf(t, err) != message.KindBufferOverflow {
			t.Fatalf("unexpected kind: %v", err)
		}
		return
	}
	if _, _, err := dec2.Decode(); err == nil {
		t.Fatalf("expected header-line-too-long error")
	} else if kindOf(t, err) != message.KindHeaderLineTooLong {
		t.Fatalf("expected KindHeaderLineTooLong, got %v", kindOf(t, err))
	}
}

func TestMaxHeadersCountBoundary(t *testing.T) {
	limits := message.DefaultLimits()
	limits.MaxHeadersCount = 3

	buildReq := func(n int) []byte {
		var buf bytes.Buffer
		buf.WriteString("GET / HTTP/1.1\r\n")
		for i := 0; i < n; i++ {
			buf.WriteString("X-H" + strconv.Itoa(i) + ": v\r\n")
		}
		buf.WriteString("\r\n")
		return buf.Bytes()
	}

	dec := NewRequestDecoderWithLimits(limits)
	if err := dec.Feed(buildReq(3)); err != nil {
		t.Fatalf("Feed (at limit): %v", err)
	}
	if _, ok, err := dec.Decode(); err != nil || !ok {
		t.Fatalf("Decode (at limit): ok=%v err=%v", ok, err)
	}

	dec2 := NewRequestDecoderWithLimits(limits)
	_ = dec2.Feed(buildReq(4))
	_, _, err := dec2.Decode()
	if err == nil {
		t.Fatalf("expected too-many-headers error")
	}
	if kindOf(t, err) != message.KindTooManyHeaders {
		t.Fatalf("expected KindTooManyHeaders, got %v", kindOf(t, err))
	}
}

func TestMaxBodySizeBoundary(t *testing.T) {
	limits := message.DefaultLimits()
	limits.MaxBodySize = 4

	okReq := []byte("POST / HTTP/1.1\r\nContent-Length: 4\r\n\r\nabcd")
	dec := NewRequestDecoderWithLimits(limits)
	if err := dec.Feed(okReq); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if _, ok, err := dec.Decode(); err != nil || !ok {
		t.Fatalf("Decode (at limit): ok=%v err=%v", ok, err)
	}

	overReq := []byte("POST / HTTP/1.1\r\nContent-Length: 5\r\n\r\nabcde")
	dec2 := NewRequestDecoderWithLimits(limits)
	if err := dec2.Feed(overReq); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	_, _, err := dec2.Decode()
	if err == nil {
		t.Fatalf("expected body-too-large error")
	}
	if kindOf(t, err) != message.KindBodyTooLarge {
		t.Fatalf("expected KindBodyTooLarge, got %v", kindOf(t, err))
	}
}

func TestMaxBufferSizeBoundary(t *testing.T) {
	limits := message.DefaultLimits()
	limits.MaxBufferSize = 16

	dec := NewRequestDecoderWithLimits(limits)
	if err := dec.Feed(bytes.Repeat([]byte("a"), 16)); err != nil {
		t.Fatalf("Feed (at limit): %v", err)
	}

	dec2 := NewRequestDecoderWithLimits(limits)
	err := dec2.Feed(bytes.Repeat([]byte("a"), 17))
	if err == nil {
		t.Fatalf("expected buffer-overflow error")
	}
	if kindOf(t, err) != message.KindBufferOverflow {
		t.Fatalf("expected KindBufferOverflow, got %v", kindOf(t, err))
	}
}

func TestStickyErrorUntilReset(t *testing.T) {
	limits := message.DefaultLimits()
	limits.MaxBufferSize = 32
	dec := NewRequestDecoderWithLimits(limits)
	err1 := dec.Feed(bytes.Repeat([]byte("a"), 33))
	if err1 == nil {
		t.Fatalf("expected error")
	}
	_, _, err2 := dec.Decode()
	if err2 != err1 {
		t.Fatalf("expected the same sticky error, got %v vs %v", err2, err1)
	}
	if err3 := dec.Feed([]byte("x")); err3 != err1 {
		t.Fatalf("expected sticky error on Feed, got %v", err3)
	}
	dec.Reset()
	if err := dec.Feed([]byte("GET / HTTP/1.1\r\n\r\n")); err != nil {
		t.Fatalf("Feed after reset: %v", err)
	}
	if _, ok, err := dec.Decode(); err != nil || !ok {
		t.Fatalf("Decode after reset: ok=%v err=%v", ok, err)
	}
}
