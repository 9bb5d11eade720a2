// Package gui is the desktop front end of the launcher. Builds tagged
// nogui replace it with a stub that reports the GUI as unavailable.
package gui

import (
	launcher "codelaunch/internal/app"
	"codelaunch/internal/errors"
)

// ErrUnavailable is returned by New when no desktop front end can run.
var ErrUnavailable = errors.New("GUI not available in this build")

// Interface is a front end that runs until the user exits.
type Interface interface {
	// Run blocks until the window is closed. Each value on raises brings
	// the window to the foreground.
	Run(raises <-chan struct{}) error
	// Rescan reloads the workspaces. It may be called from any goroutine.
	Rescan()
	Controller() *launcher.Controller
}
