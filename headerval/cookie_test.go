package headerval

import "testing"

func TestParseCookieHeader(t *testing.T) {
	cookies := ParseCookieHeader("a=1; b=2; c=3")
	if len(cookies) != 3 {
		t.Fatalf("got %d cookies, want 3", len(cookies))
	}
	if cookies[0].Name != "a" || cookies[0].Value != "1" {
		t.Errorf("got %+v", cookies[0])
	}
}

func TestParseCookieHeader_SkipsInvalidPairs(t *testing.T) {
	cookies := ParseCookieHeader(`a=1; ="no-name"; b=2`)
	if len(cookies) != 2 {
		t.Fatalf("got %d cookies, want 2 (invalid pair skipped)", len(cookies))
	}
}

func TestParseCookieHeader_QuotedValue(t *testing.T) {
	cookies := ParseCookieHeader(`a="quoted-value"`)
	if len(cookies) != 1 || cookies[0].Value != "quoted-value" {
		t.Errorf("got %+v", cookies)
	}
}

func TestCookie_String(t *testing.T) {
	c := Cookie{Name: "a", Value: "1"}
	if c.String() != "a=1" {
		t.Errorf("String() = %q, want 'a=1'", c.String())
	}
}

func TestParseSetCookie(t *testing.T) {
	sc, err := ParseSetCookie("sid=abc123; Path=/; Domain=example.com; Secure; HttpOnly; SameSite=Lax")
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if sc.Name != "sid" || sc.Value != "abc123" || sc.Path != "/" || sc.Domain != "example.com" {
		t.Errorf("got %+v", sc)
	}
	if !sc.Secure || !sc.HttpOnly || sc.SameSite != SameSiteLax {
		t.Errorf("attribute flags wrong: %+v", sc)
	}
}

func TestParseSetCookie_MaxAge(t *testing.T) {
	sc, err := ParseSetCookie("sid=abc; Max-Age=3600")
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if sc.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", sc.MaxAge)
	}
}

func TestParseSetCookie_MissingNameValue(t *testing.T) {
	if _, err := ParseSetCookie(""); err == nil {
		t.Fatal("expected error for empty Set-Cookie")
	}
}

func TestSetCookieRoundTrip(t *testing.T) {
	sc1, err := ParseSetCookie("sid=abc123; Path=/; Secure; HttpOnly")
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	sc2, err := ParseSetCookie(sc1.String())
	if err != nil {
		t.Fatalf("ParseSetCookie(String()) error = %v", err)
	}
	if sc1.Name != sc2.Name || sc1.Value != sc2.Value || sc1.Path != sc2.Path {
		t.Errorf("round-trip mismatch: %+v != %+v", sc1, sc2)
	}
	if sc1.Secure != sc2.Secure || sc1.HttpOnly != sc2.HttpOnly {
		t.Errorf("flag round-trip mismatch: %+v != %+v", sc1, sc2)
	}
}
