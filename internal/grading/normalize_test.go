package grading

import "testing"

func TestNormalizeFoldsCaseAndWhitespace(t *testing.T) {
	if got := Normalize("  Hello   World  "); got != "hello world" {
		t.Fatalf("unexpected canonical form: %q", got)
	}
	if Normalize("A\tB") != Normalize("a b") {
		t.Fatalf("expected tabs to collapse to a single space")
	}
}

func TestNormalizeKeepsLineBreaksSignificant(t *testing.T) {
	multi := Normalize("first line\r\nsecond  line")
	if multi != "first line\nsecond line" {
		t.Fatalf("unexpected multi-line form: %q", multi)
	}
	flat := Normalize("first line second line")
	if multi == flat {
		t.Fatalf("line breaks must not flatten into spaces")
	}
	if Normalize("a\rb") != Normalize("a\nb") {
		t.Fatalf("expected CR to normalize like LF")
	}
}

func TestNormalizeMissingValueIsEmpty(t *testing.T) {
	if Normalize("") != "" {
		t.Fatalf("empty input must stay empty")
	}
	if Normalize(" \t \n ") != "" {
		t.Fatalf("whitespace-only input must normalize to empty")
	}
}
