package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"shelfmark/internal/ports"
)

// allowedSchemes are the URL schemes handed to the system opener
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"file":  true,
	"ftp":   true,
}

// Opener implements ports.URLOpener using the platform's default handler
type Opener struct {
	goos string
}

// Ensure Opener implements URLOpener
var _ ports.URLOpener = (*Opener)(nil)

// NewOpener creates a new opener for the running platform
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS}
}

// Open opens a bookmark URL in the default browser
func (o *Opener) Open(rawURL string) error {
	cmd, err := o.BuildCommand(rawURL)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// BuildCommand returns the command that would open rawURL, without running it
func (o *Opener) BuildCommand(rawURL string) (*exec.Cmd, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if !allowedSchemes[u.Scheme] {
		return nil, fmt.Errorf("refusing to open %q: unsupported scheme %q", rawURL, u.Scheme)
	}

	target := u.String()
	switch o.goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
