package components

import (
	"strings"

	"codelaunch/internal/tui/styles"
)

// StatusBar shows the controller's status text. Messages that are not
// selection or edition notices are shown in the error style.
type StatusBar struct {
	text  string
	width int
}

func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

func (s *StatusBar) SetText(text string) {
	s.text = text
}

func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

func (s *StatusBar) Text() string {
	return s.text
}

func (s *StatusBar) View() string {
	if s.text == "" {
		return ""
	}
	style := styles.Theme.Status
	if isProblem(s.text) {
		style = styles.Theme.Error
	}
	if s.width > 0 {
		style = style.Width(s.width)
	}
	return style.Render(s.text)
}

func isProblem(text string) bool {
	first, _, _ := strings.Cut(text, "\n")
	for _, prefix := range []string{"Selected:", "Editor edition set to:", "Q/X/Escape"} {
		if strings.HasPrefix(first, prefix) {
			return false
		}
	}
	return true
}
