package types

import (
	"fmt"
	"strings"
)

// Environment identifies where the editor process runs.
type Environment int

const (
	// Native runs the editor directly on the host operating system.
	Native Environment = iota
	// Virtualized runs the editor inside the Linux subsystem.
	Virtualized
)

// Environment markers embedded in workspace file names.
const (
	NativeMarker      = "[Win]"
	VirtualizedMarker = "[WSL]"
)

// Environments lists every environment in display order.
var Environments = []Environment{Virtualized, Native}

// Marker returns the bracketed file name token for the environment.
func (e Environment) Marker() string {
	if e == Virtualized {
		return VirtualizedMarker
	}
	return NativeMarker
}

// Title is the panel heading used by the front ends.
func (e Environment) Title() string {
	if e == Virtualized {
		return "WSL Workspaces"
	}
	return "Win Workspaces"
}

func (e Environment) String() string {
	if e == Virtualized {
		return "virtualized"
	}
	return "native"
}

// ParseEnvironment accepts the String form plus the marker words.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native", "win", "windows", "host":
		return Native, nil
	case "virtualized", "wsl", "linux":
		return Virtualized, nil
	}
	return Native, fmt.Errorf("unknown environment %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (e Environment) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Environment) UnmarshalText(text []byte) error {
	parsed, err := ParseEnvironment(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Edition is the editor build channel.
type Edition int

const (
	// Stable is the regular release channel.
	Stable Edition = iota
	// Insiders is the preview channel.
	Insiders
)

func (e Edition) String() string {
	if e == Insiders {
		return "insiders"
	}
	return "stable"
}

// Label is the capitalised form shown in the UI.
func (e Edition) Label() string {
	if e == Insiders {
		return "Insiders"
	}
	return "Stable"
}

// ParseEdition accepts "stable", "insiders" and the legacy "normal".
func ParseEdition(s string) (Edition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stable", "normal", "":
		return Stable, nil
	case "insiders":
		return Insiders, nil
	}
	return Stable, fmt.Errorf("unknown edition %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (e Edition) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Edition) UnmarshalText(text []byte) error {
	parsed, err := ParseEdition(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Direction is the focus movement direction.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Step returns +1 for Forward and -1 for Backward.
func (d Direction) Step() int {
	if d == Backward {
		return -1
	}
	return 1
}
