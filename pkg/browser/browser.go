package browser

import (
	"os/exec"
	"runtime"
)

// Open launches the default browser at url without waiting for it to exit.
// Unsupported platforms are a silent no-op; the caller already printed the
// URL for manual use.
func Open(url string) error {
	var name string
	args := []string{url}

	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "linux", "freebsd", "openbsd":
		name = "xdg-open"
	case "windows":
		name = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		return nil
	}

	return exec.Command(name, args...).Start()
}
