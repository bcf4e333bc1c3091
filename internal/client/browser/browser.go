// Package browser hands a URL to the user's web browser.
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener navigates to a URL outside the application.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// SystemOpener launches the platform URL handler. It returns once the
// handler has started; it does not wait for the browser.
type SystemOpener struct {
	// GOOS overrides runtime.GOOS; tests set it.
	GOOS string
	// start runs the command; nil means exec.
	start func(ctx context.Context, name string, args ...string) error
}

func NewSystemOpener() *SystemOpener {
	return &SystemOpener{}
}

func (o *SystemOpener) Open(ctx context.Context, url string) error {
	name, args := command(o.goos(), url)
	start := o.start
	if start == nil {
		start = execStart
	}
	if err := start(ctx, name, args...); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return nil
}

func (o *SystemOpener) goos() string {
	if o.GOOS != "" {
		return o.GOOS
	}
	return runtime.GOOS
}

func command(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

func execStart(ctx context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// PrintOpener only reports the URL. Used with --no-browser.
type PrintOpener struct {
	Print func(url string)
}

func (p PrintOpener) Open(_ context.Context, url string) error {
	if p.Print != nil {
		p.Print(url)
	}
	return nil
}
