package views

import (
	"strings"

	"codelaunch/internal/tui/common"
	"codelaunch/internal/tui/components"
	"codelaunch/internal/tui/styles"
	"codelaunch/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// Cell widths used to fit the panels into the terminal.
const (
	panelChrome  = 4 // border and padding
	panelSpacing = 2
	columnGap    = 1
	minButton    = 8
)

// ButtonWidth derives the button width from the terminal width. Two panels
// share the line, each with two columns. Zero means the natural width.
func ButtonWidth(width int) int {
	if width <= 0 {
		return 0
	}
	panel := (width-panelSpacing)/2 - panelChrome
	button := (panel - columnGap) / 2
	if button < minButton {
		return minButton
	}
	return button
}

// RenderMainView draws the whole launcher screen.
func RenderMainView(m common.ModelReader, help string) string {
	var sb strings.Builder

	sb.WriteString(styles.Theme.Title.Render(m.Title()))
	sb.WriteString("\n")
	sb.WriteString(RenderEditions(m.Edition()))
	sb.WriteString("\n\n")

	panels := make([]string, 0, len(types.Environments))
	for i, env := range types.Environments {
		p := components.NewPanel(env)
		p.SetItems(m.Items())
		p.SetFocus(m.Focus())
		p.SetButtonWidth(ButtonWidth(m.Width()))
		if i > 0 {
			panels = append(panels, strings.Repeat(" ", panelSpacing))
		}
		panels = append(panels, p.View())
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	sb.WriteString("\n\n")

	status := components.NewStatusBar()
	status.SetText(m.Status())
	status.SetWidth(m.Width())
	sb.WriteString(status.View())

	if m.ShowHelp() {
		sb.WriteString("\n\n" + styles.Theme.Help.Render(help))
	}

	return styles.Theme.App.Render(sb.String())
}

// RenderEditions draws the edition selector with the active edition
// highlighted.
func RenderEditions(active types.Edition) string {
	parts := []string{"Editor edition:"}
	for _, e := range []types.Edition{types.Stable, types.Insiders} {
		style := styles.Theme.Edition
		if e == active {
			style = styles.Theme.Selected.MarginBottom(0)
		}
		parts = append(parts, style.Render(e.Label()))
	}
	return strings.Join(parts, " ")
}
