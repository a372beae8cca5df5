package headerval

import "testing"

func TestParseHost(t *testing.T) {
	h, err := ParseHost("example.com:8080")
	if err != nil {
		t.Fatalf("ParseHost() error = %v", err)
	}
	if h.Name != "example.com" || h.Port != "8080" {
		t.Errorf("got %+v", h)
	}
}

func TestParseHost_NoPort(t *testing.T) {
	h, err := ParseHost("example.com")
	if err != nil {
		t.Fatalf("ParseHost() error = %v", err)
	}
	if h.Name != "example.com" || h.Port != "" {
		t.Errorf("got %+v", h)
	}
}

func TestParseHost_IPv6Literal(t *testing.T) {
	h, err := ParseHost("[::1]:9000")
	if err != nil {
		t.Fatalf("ParseHost() error = %v", err)
	}
	if h.Name != "[::1]" || h.Port != "9000" {
		t.Errorf("got %+v", h)
	}
}

func TestParseHost_Empty(t *testing.T) {
	if _, err := ParseHost(""); err == nil {
		t.Fatal("expected error for empty Host")
	}
}

func TestParseHost_NonNumericPort(t *testing.T) {
	if _, err := ParseHost("example.com:abc"); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}

func TestParseHost_Internationalized(t *testing.T) {
	h, err := ParseHost("xn--nxasmq6b.example")
	if err != nil {
		t.Fatalf("ParseHost() error = %v", err)
	}
	if h.Name != "xn--nxasmq6b.example" {
		t.Errorf("got name=%q", h.Name)
	}
}

func TestHostRoundTrip(t *testing.T) {
	h1, err := ParseHost("example.com:443")
	if err != nil {
		t.Fatalf("ParseHost() error = %v", err)
	}
	h2, err := ParseHost(h1.String())
	if err != nil {
		t.Fatalf("ParseHost(String()) error = %v", err)
	}
	if h1 != h2 {
		t.Errorf("round-trip mismatch: %+v != %+v", h1, h2)
	}
}
