package views

import (
	"testing"

	"codelaunch/internal/selection"
	"codelaunch/pkg/testutils"
	"codelaunch/pkg/types"

	"github.com/stretchr/testify/assert"
)

// Mock model for testing
type mockModel struct {
	items    []selection.Item
	focus    int
	edition  types.Edition
	status   string
	width    int
	showHelp bool
}

func (m *mockModel) Title() string { return "Launcher" }
func (m *mockModel) Items() []selection.Item { return m.items }
func (m *mockModel) Focus() int { return m.focus }
func (m *mockModel) Edition() types.Edition { return m.edition }
func (m *mockModel) Status() string { return m.status }
func (m *mockModel) Width() int { return m.width }
func (m *mockModel) ShowHelp() bool { return m.showHelp }

func item(env types.Environment, name string, col selection.Column, row int) selection.Item {
	return selection.Item{
		Entry:  types.WorkspaceEntry{DisplayName: name, FileName: name + " " + env.Marker() + types.WorkspaceSuffix, Environment: env},
		Column: col,
		Row:    row,
	}
}

func TestRenderMainView(t *testing.T) {
	tests := []struct {
		name     string
		model    *mockModel
		help     string
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name:     "empty catalog",
			model:    &mockModel{focus: -1, status: "Q/X/Escape: exit"},
			contains: []string{"Launcher", "WSL Workspaces", "Win Workspaces", "Editor edition:", "Stable", "Insiders", "Q/X/Escape: exit"},
		},
		{
			name: "items in both panels",
			model: &mockModel{
				items: []selection.Item{
					item(types.Virtualized, "api", selection.Left, 0),
					item(types.Native, "game", selection.Left, 0),
				},
				status: "Selected: api",
				width:  90,
			},
			contains: []string{"api", "game", "Selected: api"},
		},
		{
			name:     "help shown",
			model:    &mockModel{focus: -1, showHelp: true},
			help:     "tab next",
			contains: []string{"tab next"},
		},
		{
			name:     "help hidden",
			model:    &mockModel{focus: -1},
			help:     "tab next",
			excludes: []string{"tab next"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := testutils.StripANSI(RenderMainView(tt.model, tt.help))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestButtonWidth(t *testing.T) {
	assert.Zero(t, ButtonWidth(0))
	assert.Equal(t, minButton, ButtonWidth(20))
	assert.Equal(t, 17, ButtonWidth(82))
}
