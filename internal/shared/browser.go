package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Overridable in tests; exec.Command per platform is not.
var currentOS = func() string { return runtime.GOOS }

// OpenBrowser opens a URL in the default system browser. The viewer uses it
// to jump from a library entry to its MangaDex page.
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch os := currentOS(); os {
	case "darwin":
		name = "open"
	case "linux":
		name = "xdg-open"
	case "windows":
		name, args = "cmd", []string{"/c", "start"}
	default:
		return fmt.Errorf("unsupported platform: %s", os)
	}

	if err := exec.Command(name, append(args, url)...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
