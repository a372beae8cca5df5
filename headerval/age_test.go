package headerval

import "testing"

func TestParseAge(t *testing.T) {
	a, err := ParseAge("120")
	if err != nil {
		t.Fatalf("ParseAge() error = %v", err)
	}
	if a != 120 {
		t.Errorf("Age = %d, want 120", a)
	}
}

func TestParseAge_Negative(t *testing.T) {
	if _, err := ParseAge("-1"); err == nil {
		t.Fatal("expected error for negative Age")
	}
}

func TestParseAge_NonNumeric(t *testing.T) {
	if _, err := ParseAge("soon"); err == nil {
		t.Fatal("expected error for non-numeric Age")
	}
}

func TestAge_String(t *testing.T) {
	if Age(42).String() != "42" {
		t.Errorf("String() = %q, want '42'", Age(42).String())
	}
}
