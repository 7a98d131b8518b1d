package value

import "testing"

func TestUTF16RoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"Hello, world!",
		"héllo wörld",  // multi-byte UTF-8, single UTF-16 unit per rune
		"\U0001F600",   // surrogate pair in UTF-16
		"a\x00b",       // embedded NUL — must survive the round trip
	}
	for _, s := range cases {
		units := ToUTF16(s)
		if units == nil {
			t.Errorf("ToUTF16(%q) returned nil, want non-nil (possibly empty) slice", s)
		}
		got := FromUTF16(units)
		if got != s {
			t.Errorf("round trip %q -> %v -> %q", s, units, got)
		}
	}
}

func TestToUTF16EmptyIsEmptyNotNil(t *testing.T) {
	units := ToUTF16("")
	if units == nil {
		t.Fatal("ToUTF16(\"\") = nil, want empty non-nil slice")
	}
	if len(units) != 0 {
		t.Fatalf("ToUTF16(\"\") = %v, want empty", units)
	}
}

func TestSurrogatePairLength(t *testing.T) {
	units := ToUTF16("\U0001F600")
	if len(units) != 2 {
		t.Fatalf("expected a surrogate pair (2 units), got %d: %v", len(units), units)
	}
}
