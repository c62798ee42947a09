package shared

import (
	"strings"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	t.Run("unsupported platform", func(t *testing.T) {
		orig := currentOS
		currentOS = func() string { return "plan9" }
		defer func() { currentOS = orig }()

		err := OpenBrowser("https://mangadex.org/title/md-a")
		if err == nil {
			t.Fatal("expected error on unsupported platform")
		}
		if !strings.Contains(err.Error(), "unsupported platform") {
			t.Errorf("expected unsupported platform error, got %v", err)
		}
	})
}
