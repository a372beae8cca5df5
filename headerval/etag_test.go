package headerval

import "testing"

func TestParseETag(t *testing.T) {
	e, err := ParseETag(`"abc123"`)
	if err != nil {
		t.Fatalf("ParseETag() error = %v", err)
	}
	if e.Value != "abc123" || e.Weak {
		t.Errorf("got %+v", e)
	}
}

func TestParseETag_Weak(t *testing.T) {
	e, err := ParseETag(`W/"abc123"`)
	if err != nil {
		t.Fatalf("ParseETag() error = %v", err)
	}
	if e.Value != "abc123" || !e.Weak {
		t.Errorf("got %+v", e)
	}
}

func TestParseETag_Unquoted(t *testing.T) {
	if _, err := ParseETag("abc123"); err == nil {
		t.Fatal("expected error for unquoted entity-tag")
	}
}

func TestETag_Equal(t *testing.T) {
	strong := ETag{Value: "v"}
	weak := ETag{Value: "v", Weak: true}
	if !strong.Equal(weak, false) {
		t.Error("weak comparison should treat equal values as equal")
	}
	if strong.Equal(weak, true) {
		t.Error("strong comparison must reject when either tag is weak")
	}
	if !strong.Equal(ETag{Value: "v"}, true) {
		t.Error("strong comparison should match two non-weak equal tags")
	}
}

func TestParseETagList_Wildcard(t *testing.T) {
	l, err := ParseETagList("*")
	if err != nil {
		t.Fatalf("ParseETagList() error = %v", err)
	}
	if !l.Wildcard {
		t.Error("expected Wildcard = true")
	}
}

func TestParseETagList_Multiple(t *testing.T) {
	l, err := ParseETagList(`"a", W/"b", "c"`)
	if err != nil {
		t.Fatalf("ParseETagList() error = %v", err)
	}
	if len(l.Tags) != 3 || l.Tags[1].Value != "b" || !l.Tags[1].Weak {
		t.Errorf("got %+v", l.Tags)
	}
}

func TestETagListRoundTrip(t *testing.T) {
	l1, err := ParseETagList(`"a", W/"b"`)
	if err != nil {
		t.Fatalf("ParseETagList() error = %v", err)
	}
	l2, err := ParseETagList(l1.String())
	if err != nil {
		t.Fatalf("ParseETagList(String()) error = %v", err)
	}
	if len(l1.Tags) != len(l2.Tags) {
		t.Fatalf("round-trip length mismatch: %d != %d", len(l1.Tags), len(l2.Tags))
	}
	for i := range l1.Tags {
		if l1.Tags[i] != l2.Tags[i] {
			t.Errorf("tag %d mismatch: %+v != %+v", i, l1.Tags[i], l2.Tags[i])
		}
	}
}
