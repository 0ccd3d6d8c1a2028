package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExcerpt(t *testing.T) {
	short := "a short review"
	if got := excerpt(short); got != short {
		t.Errorf("expected short body untouched, got %q", got)
	}

	long := strings.Repeat("x", 200)
	got := excerpt(long)
	if got != strings.Repeat("x", 120)+"…" {
		t.Errorf("expected truncation at 120 characters, got %q", got)
	}
}

func TestExcerptMultiByte(t *testing.T) {
	body := strings.Repeat("é", 200)
	got := excerpt(body)
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("é", 120)+"…" {
		t.Errorf("expected truncation on a character boundary, got %q", got)
	}
}
