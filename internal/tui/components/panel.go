package components

import (
	"codelaunch/internal/selection"
	"codelaunch/internal/tui/styles"
	"codelaunch/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// Panel renders one environment section: a heading over two button
// columns.
type Panel struct {
	env         types.Environment
	items       []selection.Item
	indices     []int // position of each item in the focus order
	focus       int
	buttonWidth int
}

// NewPanel returns the panel for env.
func NewPanel(env types.Environment) *Panel {
	return &Panel{env: env, focus: -1}
}

// SetItems keeps the items that belong to this panel. items is the full
// focus order.
func (p *Panel) SetItems(items []selection.Item) {
	p.items = p.items[:0]
	p.indices = p.indices[:0]
	for i, item := range items {
		if item.Entry.Environment == p.env {
			p.items = append(p.items, item)
			p.indices = append(p.indices, i)
		}
	}
}

// SetFocus sets the focused index within the full focus order.
func (p *Panel) SetFocus(index int) {
	p.focus = index
}

// SetButtonWidth sets the width of each button in cells.
func (p *Panel) SetButtonWidth(width int) {
	p.buttonWidth = width
}

func (p *Panel) View() string {
	var left, right []string
	for i, item := range p.items {
		button := p.renderButton(item.Entry.DisplayName, p.indices[i] == p.focus)
		if item.Column == selection.Right {
			right = append(right, button)
		} else {
			left = append(left, button)
		}
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		" ",
		lipgloss.JoinVertical(lipgloss.Left, right...),
	)
	heading := styles.Theme.Heading.Render(p.env.Title())
	return styles.Theme.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, heading, "", columns))
}

func (p *Panel) renderButton(label string, selected bool) string {
	style := styles.Theme.Button
	if selected {
		style = styles.Theme.Selected
	}
	if p.buttonWidth > 0 {
		style = style.Width(p.buttonWidth).MaxWidth(p.buttonWidth)
	}
	return style.Render(label)
}
