package prompt

import "testing"

func TestFirstOption(t *testing.T) {
	got, err := FirstOption("pick one", []string{"origin/master", "origin/wab-8.1"})
	if err != nil {
		t.Fatalf("FirstOption() error = %v", err)
	}
	if got != 0 {
		t.Errorf("FirstOption() = %d, want 0", got)
	}
}

func TestFirstOptionEmpty(t *testing.T) {
	if _, err := FirstOption("pick one", nil); err == nil {
		t.Error("FirstOption() expected error for empty options")
	}
}
