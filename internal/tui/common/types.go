package common

import (
	"codelaunch/internal/selection"
	"codelaunch/pkg/types"
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Title() string
	Items() []selection.Item
	Focus() int
	Edition() types.Edition
	Status() string
	Width() int
	ShowHelp() bool
}
