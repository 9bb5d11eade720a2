// Package tui is the terminal front end of the launcher. It drives the
// same controller as the desktop window, so selection, launching and
// edition changes behave identically.
package tui

import (
	"sync/atomic"

	launcher "codelaunch/internal/app"
	"codelaunch/internal/config"
	"codelaunch/internal/launch"
	"codelaunch/internal/log"
	"codelaunch/internal/selection"
	"codelaunch/internal/tui/messages"
	"codelaunch/internal/tui/views"
	"codelaunch/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// appPadding is the horizontal space taken by the outer style.
const appPadding = 4

// Model is the bubbletea model. It is also the controller's view, so
// controller calls must only be made from Update.
type Model struct {
	ctrl  *launcher.Controller
	keys  types.KeyMap
	help  help.Model
	title string

	// View state pushed by the controller
	items   []selection.Item
	focus   int
	edition types.Edition
	status  string

	width    int
	showHelp bool

	// program is set by Run and read by Rescan from other goroutines.
	program     atomic.Pointer[tea.Program]
	programOpts []tea.ProgramOption
}

// New creates the terminal front end for store.
func New(store *config.Store, gate *launch.Gate, title string, opts ...launcher.Option) *Model {
	m := &Model{
		keys:     types.DefaultKeyMap(),
		help:     help.New(),
		title:    title,
		focus:    -1,
		status:   launcher.Instructions,
		showHelp: true,

		programOpts: []tea.ProgramOption{tea.WithAltScreen()},
	}
	m.ctrl = launcher.New(store, gate, m, opts...)
	return m
}

// Controller returns the controller behind the model.
func (m *Model) Controller() *launcher.Controller {
	return m.ctrl
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.title),
		func() tea.Msg { return messages.RefreshMsg{} },
	)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case messages.RefreshMsg:
		m.ctrl.Refresh()
	case messages.RaiseMsg:
		log.Info("raise requested; terminal sessions cannot be brought to the front")
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Backward):
		m.ctrl.MoveFocus(types.Backward)
	case key.Matches(msg, m.keys.Forward):
		m.ctrl.MoveFocus(types.Forward)
	case key.Matches(msg, m.keys.Activate):
		m.ctrl.Activate()
	case key.Matches(msg, m.keys.Stable):
		m.ctrl.SetEdition(types.Stable)
	case key.Matches(msg, m.keys.Insiders):
		m.ctrl.SetEdition(types.Insiders)
	case key.Matches(msg, m.keys.Refresh):
		m.ctrl.Refresh()
	case msg.String() == "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m, m.help.View(m.keys))
}

// Run starts the program on the terminal and blocks until the user exits.
// Raise requests are reported but cannot bring a terminal forward.
func (m *Model) Run(raises <-chan struct{}) error {
	program := tea.NewProgram(m, m.programOpts...)
	m.program.Store(program)
	defer m.program.Store(nil)
	done := make(chan struct{})
	defer close(done)
	if raises != nil {
		go func() {
			for {
				select {
				case <-raises:
					program.Send(messages.RaiseMsg{})
				case <-done:
					return
				}
			}
		}()
	}
	_, err := program.Run()
	return err
}

// Rescan asks the running program to reload the workspaces. It is safe to
// call from any goroutine; before Run starts the call is a no-op, since Init
// performs the first scan anyway.
func (m *Model) Rescan() {
	if program := m.program.Load(); program != nil {
		program.Send(messages.RefreshMsg{})
	}
}

// ShowItems implements launcher.View.
func (m *Model) ShowItems(items []selection.Item) { m.items = items }

// Highlight implements launcher.View.
func (m *Model) Highlight(index int) { m.focus = index }

// SetStatus implements launcher.View.
func (m *Model) SetStatus(text string) { m.status = text }

// SetEdition implements launcher.View.
func (m *Model) SetEdition(edition types.Edition) { m.edition = edition }

// Relayout implements launcher.View. Terminal layout follows the
// terminal width instead of pixel metrics.
func (m *Model) Relayout(launcher.Metrics) {}

// Title returns the window title.
func (m *Model) Title() string { return m.title }

// Items returns the items in focus order.
func (m *Model) Items() []selection.Item { return m.items }

// Focus returns the focused index, or -1.
func (m *Model) Focus() int { return m.focus }

// Edition returns the highlighted edition.
func (m *Model) Edition() types.Edition { return m.edition }

// Status returns the status text.
func (m *Model) Status() string { return m.status }

// Width returns the usable width inside the outer padding.
func (m *Model) Width() int {
	if m.width <= appPadding {
		return 0
	}
	return m.width - appPadding
}

// ShowHelp reports whether the key help is shown.
func (m *Model) ShowHelp() bool { return m.showHelp }
