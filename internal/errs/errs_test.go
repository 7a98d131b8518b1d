package errs

import (
	"errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	e := New(TypeNotFound, "class %q", "Game")
	if got, want := e.Error(), "TypeNotFound: class \"Game\""; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("boom")
	w := Wrap(ModuleLoadFailed, cause, "load %q", "game.hl")
	if w.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", w.Unwrap(), cause)
	}
	if got, want := w.Error(), `ModuleLoadFailed: load "game.hl": boom`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIs(t *testing.T) {
	err := New(NotInitialized, "static field read before entry point")
	if !Is(err, NotInitialized) {
		t.Error("Is(err, NotInitialized) = false, want true")
	}
	if Is(err, FieldNotFound) {
		t.Error("Is(err, FieldNotFound) = true, want false")
	}

	wrapped := errors.New("context: " + err.Error())
	if Is(wrapped, NotInitialized) {
		t.Error("Is should not match a plain errors.New even if the text matches")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		NullVM:         "NullVM",
		CallFailed:     "CallFailed",
		Unknown:        "Unknown",
		NotImplemented: "NotImplemented",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
