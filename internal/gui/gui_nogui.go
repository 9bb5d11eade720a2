//go:build nogui

package gui

import (
	launcher "codelaunch/internal/app"
	"codelaunch/internal/config"
	"codelaunch/internal/launch"
)

// Available is always false in builds without the desktop toolkit.
func Available() bool {
	return false
}

// New always fails with ErrUnavailable.
func New(*config.Store, *launch.Gate, string, ...launcher.Option) (Interface, error) {
	return nil, ErrUnavailable
}
