package tui

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	launcher "codelaunch/internal/app"
	"codelaunch/internal/catalog"
	"codelaunch/internal/config"
	"codelaunch/internal/launch"
	"codelaunch/internal/tui/messages"
	"codelaunch/pkg/testutils"
	"codelaunch/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	m     *Model
	store *config.Store
	calls [][]string
}

func newFixture(t *testing.T, cat catalog.Catalog) *fixture {
	t.Helper()
	store := testutils.NewStore(t, nil)
	f := &fixture{store: store}
	gate := launch.NewGate(launch.StarterFunc(func(argv []string) error {
		f.calls = append(f.calls, argv)
		return nil
	}))
	f.m = New(store, gate, "CodeLaunch", launcher.WithScanner(func(*config.Config) catalog.Catalog { return cat }))
	f.m.Update(messages.RefreshMsg{})
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sample() catalog.Catalog {
	return catalog.Catalog{
		Virtualized: []types.WorkspaceEntry{testutils.Entry(types.Virtualized, "api"), testutils.Entry(types.Virtualized, "web")},
		Native:      []types.WorkspaceEntry{testutils.Entry(types.Native, "game")},
	}
}

func TestModelInitialization(t *testing.T) {
	f := newFixture(t, sample())

	assert.NotNil(t, f.m.Init())
	assert.Len(t, f.m.Items(), 3)
	assert.Equal(t, 0, f.m.Focus())
	assert.Equal(t, types.Stable, f.m.Edition())
	assert.Equal(t, "Selected: api\n"+launcher.Instructions, f.m.Status())
	assert.Same(t, f.m.Controller(), f.m.ctrl)
}

func TestNavigation(t *testing.T) {
	f := newFixture(t, sample())

	f.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, f.m.Focus())
	f.send(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, f.m.Focus())
	f.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, f.m.Focus(), "focus wraps around")

	f.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 2, f.m.Focus())
	f.send(runes("h"))
	assert.Equal(t, 1, f.m.Focus())
	assert.Equal(t, "Selected: web\n"+launcher.Instructions, f.m.Status())
}

func TestActivate(t *testing.T) {
	f := newFixture(t, sample())

	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, f.calls, 1)
	assert.Equal(t, []string{"wsl", "code", config.DefaultVirtualizedRoot + "/api [WSL].code-workspace"}, f.calls[0])

	f.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	require.Len(t, f.calls, 2)
	assert.Equal(t, []string{"code.cmd", config.DefaultNativeRoot + "/game [Win].code-workspace"}, f.calls[1])
}

func TestEditionKeys(t *testing.T) {
	f := newFixture(t, sample())

	f.send(runes("i"))
	assert.Equal(t, types.Insiders, f.m.Edition())
	assert.Equal(t, types.Insiders, f.store.Current().LastSelectedEdition)

	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, f.calls, 1)
	assert.Equal(t, "wsl", f.calls[0][0])
	assert.Equal(t, "code-insiders", f.calls[0][1])

	f.send(runes("N"))
	assert.Equal(t, types.Stable, f.m.Edition())
	assert.Equal(t, types.Stable, f.store.Current().LastSelectedEdition)
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		runes("q"), runes("Q"), runes("x"), runes("X"),
		{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC},
	} {
		t.Run(msg.String(), func(t *testing.T) {
			f := newFixture(t, sample())
			cmd := f.send(msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestEmptyCatalog(t *testing.T) {
	f := newFixture(t, catalog.Catalog{})

	assert.Equal(t, -1, f.m.Focus())
	f.send(tea.KeyMsg{Type: tea.KeyTab})
	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, f.calls)
	assert.Equal(t, launcher.Instructions, f.m.Status())
}

func TestWindowSize(t *testing.T) {
	f := newFixture(t, sample())
	before := f.store.Current().WindowSize

	f.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 116, f.m.Width())
	assert.Equal(t, before, f.store.Current().WindowSize, "terminal size is not persisted")

	f.send(tea.WindowSizeMsg{Width: 3, Height: 40})
	assert.Zero(t, f.m.Width())
}

func TestView(t *testing.T) {
	f := newFixture(t, sample())
	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := f.m.View()
	for _, want := range []string{"CodeLaunch", "WSL Workspaces", "Win Workspaces", "api", "web", "game", "Editor edition:", "Selected: api"} {
		assert.Contains(t, out, want)
	}

	f.send(runes("?"))
	assert.False(t, f.m.ShowHelp())
}

func TestRescanWithoutProgram(t *testing.T) {
	f := newFixture(t, sample())
	assert.NotPanics(t, f.m.Rescan)
}

func TestRescanWhileRunning(t *testing.T) {
	var extra atomic.Bool
	scan := func(*config.Config) catalog.Catalog {
		cat := sample()
		if extra.Load() {
			cat.Native = append(cat.Native, testutils.Entry(types.Native, "docs"))
		}
		return cat
	}
	store := testutils.NewStore(t, nil)
	gate := launch.NewGate(launch.StarterFunc(func([]string) error { return nil }))
	m := New(store, gate, "CodeLaunch", launcher.WithScanner(scan))
	m.programOpts = []tea.ProgramOption{
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	}

	// Rescan before Run is dropped.
	m.Rescan()

	errc := make(chan error, 1)
	go func() { errc <- m.Run(nil) }()
	require.Eventually(t, func() bool { return m.program.Load() != nil }, time.Second, 5*time.Millisecond)

	extra.Store(true)
	m.Rescan()
	m.program.Load().Quit()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("program did not exit")
	}
	assert.Len(t, m.Items(), 4)
	assert.Nil(t, m.program.Load())
}

func TestRaiseIsIgnored(t *testing.T) {
	f := newFixture(t, sample())
	assert.Nil(t, f.send(messages.RaiseMsg{}))
}
