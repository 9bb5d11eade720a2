//go:build !nogui

package gui

import (
	"os"
	"runtime"

	launcher "codelaunch/internal/app"
	"codelaunch/internal/config"
	"codelaunch/internal/launch"
)

// Available reports whether a desktop session is reachable.
func Available() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// New creates the desktop front end, or returns ErrUnavailable when there
// is no display to open a window on.
func New(store *config.Store, gate *launch.Gate, title string, opts ...launcher.Option) (Interface, error) {
	if !Available() {
		return nil, ErrUnavailable
	}
	return NewApp(store, gate, title, opts...), nil
}
