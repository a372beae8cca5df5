package headerval

import "testing"

func TestParseBasicAuth(t *testing.T) {
	a, err := ParseBasicAuth("Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==")
	if err != nil {
		t.Fatalf("ParseBasicAuth() error = %v", err)
	}
	if a.Username != "Aladdin" || a.Password != "open sesame" {
		t.Errorf("got %+v", a)
	}
}

func TestParseBasicAuth_WrongScheme(t *testing.T) {
	if _, err := ParseBasicAuth("Bearer xyz"); err == nil {
		t.Fatal("expected error for non-Basic scheme")
	}
}

func TestParseBasicAuth_BadBase64(t *testing.T) {
	if _, err := ParseBasicAuth("Basic ???"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestBasicAuthRoundTrip(t *testing.T) {
	a1, err := ParseBasicAuth("Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==")
	if err != nil {
		t.Fatalf("ParseBasicAuth() error = %v", err)
	}
	a2, err := ParseBasicAuth(a1.String())
	if err != nil {
		t.Fatalf("ParseBasicAuth(String()) error = %v", err)
	}
	if a1 != a2 {
		t.Errorf("round-trip mismatch: %+v != %+v", a1, a2)
	}
}

func TestParseBearerToken(t *testing.T) {
	b, err := ParseBearerToken("Bearer abc123.XYZ_-")
	if err != nil {
		t.Fatalf("ParseBearerToken() error = %v", err)
	}
	if b != "abc123.XYZ_-" {
		t.Errorf("got %q", b)
	}
}

func TestParseBearerToken_InvalidChars(t *testing.T) {
	if _, err := ParseBearerToken("Bearer abc 123"); err == nil {
		t.Fatal("expected error for space in bearer token")
	}
}

func TestParseDigestAuth(t *testing.T) {
	d, err := ParseDigestAuth(`Digest realm="test", nonce="abc", qop=auth`)
	if err != nil {
		t.Fatalf("ParseDigestAuth() error = %v", err)
	}
	if d.Params["realm"] != "test" || d.Params["nonce"] != "abc" || d.Params["qop"] != "auth" {
		t.Errorf("got %+v", d)
	}
	if len(d.Order) != 3 || d.Order[0] != "realm" {
		t.Errorf("order = %v", d.Order)
	}
}

func TestDigestAuthRoundTrip(t *testing.T) {
	d1, err := ParseDigestAuth(`Digest realm="test", nonce="abc"`)
	if err != nil {
		t.Fatalf("ParseDigestAuth() error = %v", err)
	}
	d2, err := ParseDigestAuth(d1.String())
	if err != nil {
		t.Fatalf("ParseDigestAuth(String()) error = %v", err)
	}
	if len(d1.Order) != len(d2.Order) {
		t.Fatalf("order length mismatch")
	}
	for _, k := range d1.Order {
		if d1.Params[k] != d2.Params[k] {
			t.Errorf("param %q mismatch: %q != %q", k, d1.Params[k], d2.Params[k])
		}
	}
}
