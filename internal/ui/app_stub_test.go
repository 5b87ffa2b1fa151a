//go:build !fyne

package ui

import (
	"strings"
	"testing"
)

// The headless stub must tell the user exactly how to rebuild with the UI.
func TestRunStub_ReturnsRebuildHint(t *testing.T) {
	err := Run("/tmp/some-storage-dir")
	if err == nil {
		t.Fatal("expected error from Run() in a headless build, got nil")
	}
	msg := err.Error()
	for _, want := range []string{"UI not built", "-tags fyne", "cmd/phonemepal"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}
