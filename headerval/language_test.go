package headerval

import "testing"

func TestParseContentLanguage(t *testing.T) {
	cl, err := ParseContentLanguage("en, de-DE")
	if err != nil {
		t.Fatalf("ParseContentLanguage() error = %v", err)
	}
	if len(cl) != 2 || cl[0] != "en" || cl[1] != "de-DE" {
		t.Errorf("got %v", cl)
	}
}

func TestParseContentLanguage_Invalid(t *testing.T) {
	if _, err := ParseContentLanguage("not_a_tag!"); err == nil {
		t.Fatal("expected error for invalid language tag")
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	al, err := ParseAcceptLanguage("en-US;q=0.9, en;q=0.7, *;q=0.1")
	if err != nil {
		t.Fatalf("ParseAcceptLanguage() error = %v", err)
	}
	if len(al) != 3 || al[0].Tag != "en-US" || al[0].Quality != 0.9 {
		t.Errorf("got %+v", al)
	}
}

func TestParseAcceptLanguage_DefaultQuality(t *testing.T) {
	al, err := ParseAcceptLanguage("en")
	if err != nil {
		t.Fatalf("ParseAcceptLanguage() error = %v", err)
	}
	if al[0].Quality != 1.0 {
		t.Errorf("Quality = %v, want 1.0", al[0].Quality)
	}
}

func TestAcceptLanguageRoundTrip(t *testing.T) {
	al1, err := ParseAcceptLanguage("en-US;q=0.9, en;q=0.7")
	if err != nil {
		t.Fatalf("ParseAcceptLanguage() error = %v", err)
	}
	al2, err := ParseAcceptLanguage(al1.String())
	if err != nil {
		t.Fatalf("ParseAcceptLanguage(String()) error = %v", err)
	}
	if len(al1) != len(al2) {
		t.Fatalf("length mismatch")
	}
	for i := range al1 {
		if al1[i] != al2[i] {
			t.Errorf("entry %d mismatch: %+v != %+v", i, al1[i], al2[i])
		}
	}
}
