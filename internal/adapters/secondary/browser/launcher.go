// Package browser opens the preview page in the user's browser.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// ErrNoBrowser is returned when no opener command exists on this system
var ErrNoBrowser = errors.New("no supported browser found")

// opener is a command that opens a URL appended to its arguments
type opener struct {
	name    string
	command string
	args    []string
}

// Launcher opens URLs with the first opener found on PATH
type Launcher struct {
	openers  []opener
	lookPath func(file string) (string, error)
	start    func(ctx context.Context, name string, args ...string) error
}

// NewLauncher creates a launcher for the current platform
func NewLauncher() *Launcher {
	return &Launcher{
		openers:  openersFor(runtime.GOOS),
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Open launches the browser without waiting for it to exit
func (l *Launcher) Open(ctx context.Context, url string) error {
	o, err := l.selectOpener()
	if err != nil {
		return err
	}

	args := append(append([]string{}, o.args...), url)
	if err := l.start(ctx, o.command, args...); err != nil {
		return fmt.Errorf("launching %s: %w", o.name, err)
	}
	return nil
}

// Detect returns the name of the opener Open would use
func (l *Launcher) Detect() (string, error) {
	o, err := l.selectOpener()
	if err != nil {
		return "", err
	}
	return o.name, nil
}

func (l *Launcher) selectOpener() (*opener, error) {
	for i := range l.openers {
		if _, err := l.lookPath(l.openers[i].command); err == nil {
			return &l.openers[i], nil
		}
	}
	return nil, fmt.Errorf("%w on %s", ErrNoBrowser, runtime.GOOS)
}

// startDetached starts the browser outside ctx's lifetime: stopping the
// preview server must not kill the user's browser
func startDetached(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(name, args...) // #nosec G204 - command comes from the fixed opener table
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openersFor(goos string) []opener {
	switch goos {
	case "darwin":
		return []opener{{name: "default", command: "open"}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []opener{
			{name: "xdg-open", command: "xdg-open"},
			{name: "sensible-browser", command: "sensible-browser"},
			{name: "chrome", command: "google-chrome"},
			{name: "firefox", command: "firefox"},
		}
	case "windows":
		return []opener{{name: "default", command: "rundll32", args: []string{"url.dll,FileProtocolHandler"}}}
	default:
		return nil
	}
}

// Ensure Launcher implements ports.BrowserLauncher
var _ ports.BrowserLauncher = (*Launcher)(nil)
