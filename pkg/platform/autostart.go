package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-autostart"
	"github.com/rs/zerolog/log"
)

const autostartName = "prayer-bar"

// AutostartEntry describes how the login item launches the app. A binary
// inside a macOS bundle is started through the bundle so notifications keep
// the bundle's identity.
func AutostartEntry(execPath string) *autostart.App {
	exec := []string{execPath}
	if bundle := appBundle(execPath); bundle != "" {
		exec = []string{"/usr/bin/open", "-a", bundle}
	}

	return &autostart.App{
		Name:        autostartName,
		DisplayName: "Prayer Bar",
		Exec:        exec,
	}
}

// appBundle returns the enclosing X.app directory of a bundled binary, or ""
func appBundle(execPath string) string {
	marker := ".app" + string(filepath.Separator) + "Contents" + string(filepath.Separator) + "MacOS" + string(filepath.Separator)
	i := strings.Index(execPath, marker)
	if i < 0 {
		return ""
	}
	return execPath[:i+len(".app")]
}

// SetAutostart brings the login item in line with enable
func SetAutostart(enable bool) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("failed to resolve executable: %w", err)
	}

	app := AutostartEntry(execPath)
	if app.IsEnabled() == enable {
		return nil
	}

	if enable {
		if err := app.Enable(); err != nil {
			return fmt.Errorf("failed to enable launch at login: %w", err)
		}
		log.Info().Strs("exec", app.Exec).Msg("Launch at login enabled")
		return nil
	}

	if err := app.Disable(); err != nil {
		return fmt.Errorf("failed to disable launch at login: %w", err)
	}
	log.Info().Msg("Launch at login disabled")
	return nil
}
