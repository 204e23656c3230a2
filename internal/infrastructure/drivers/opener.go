package drivers

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/domain/actions"
)

var (
	_ ports.URLOpener   = (*SystemOpener)(nil)
	_ ports.AppLauncher = (*AppLauncher)(nil)
)

// SystemOpener hands URLs to the platform's default handler.
type SystemOpener struct {
	runner  CommandRunner
	command []string
}

// NewSystemOpener creates an opener. override replaces the platform
// command; it is split on whitespace, and the URL is appended as the last
// argument.
func NewSystemOpener(runner CommandRunner, override string) *SystemOpener {
	command := strings.Fields(override)
	if len(command) == 0 {
		command = defaultOpener(runtime.GOOS)
	}
	return &SystemOpener{runner: runner, command: command}
}

func defaultOpener(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// OpenURL implements ports.URLOpener. Only http and https URLs are
// handed over.
func (o *SystemOpener) OpenURL(ctx context.Context, url string) error {
	if !actions.IsNetworkURL(url) {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", url)
	}
	args := append(append([]string(nil), o.command[1:]...), url)
	return o.runner.Run(ctx, o.command[0], args...)
}

// AppLauncher starts applications without waiting for them to exit.
type AppLauncher struct {
	runner CommandRunner
}

// NewAppLauncher creates a launcher.
func NewAppLauncher(runner CommandRunner) *AppLauncher {
	return &AppLauncher{runner: runner}
}

// Launch implements ports.AppLauncher.
func (l *AppLauncher) Launch(ctx context.Context, target string, args []string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("empty launch target")
	}
	return l.runner.Start(ctx, target, args...)
}
