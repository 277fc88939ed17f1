package textclean

import (
	"errors"
	"testing"
)

func TestCleanCollapsesWhitespace(t *testing.T) {
	c := NewCleaner(false)

	got, err := c.Clean("The  cat\n\truns\r\n  far.")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	want := "The cat runs far."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCleanStripsArtifacts(t *testing.T) {
	c := NewCleaner(false)

	got, err := c.Clean("run© jump® (fast), stop!")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	want := "run jump (fast), stop!"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCleanIdempotent(t *testing.T) {
	c := NewCleaner(true)

	once, err := c.Clean("  Mixed   CASE text, with  §weird¶ marks.  ")
	if err != nil {
		t.Fatalf("first clean: %v", err)
	}
	twice, err := c.Clean(once)
	if err != nil {
		t.Fatalf("second clean: %v", err)
	}
	if once != twice {
		t.Errorf("cleaning is not idempotent: %q != %q", once, twice)
	}
}

func TestCleanLowercase(t *testing.T) {
	c := NewCleaner(true)
	got, err := c.Clean("The DOG Ran")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if got != "the dog ran" {
		t.Errorf("got %q", got)
	}
}

func TestCleanInvalidUTF8(t *testing.T) {
	c := NewCleaner(false)

	_, err := c.Clean("ok\xff\xfebroken")
	if err == nil {
		t.Fatal("expected encoding error")
	}
	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("expected EncodingError, got %T", err)
	}
	if ee.Offset != 2 {
		t.Errorf("expected offset 2, got %d", ee.Offset)
	}
}

func TestCleanEmpty(t *testing.T) {
	c := NewCleaner(false)
	got, err := c.Clean("   \n\t ")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
