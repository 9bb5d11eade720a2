//go:build !nogui

package gui

import (
	"sync"
	"time"

	launcher "codelaunch/internal/app"
	"codelaunch/internal/config"
	"codelaunch/internal/launch"
	"codelaunch/internal/log"
	"codelaunch/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"
)

// AppID identifies the application to the toolkit.
const AppID = "io.github.codelaunch"

// framePoll is how often the window size is sampled.
const framePoll = 100 * time.Millisecond

// App is the desktop front end. It owns the window and implements
// launcher.View for the controller that drives it.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	ctrl       *launcher.Controller
	title      string

	panels   map[types.Environment]*panel
	tiles    []*tile // focus order
	editions map[types.Edition]*tile
	status   *widget.Label
	content  *fyne.Container

	metricsMu sync.Mutex
	metrics   launcher.Metrics

	shift bool
	done  chan struct{}
	quit  sync.Once
}

// panel is one bordered environment section with two button columns.
type panel struct {
	title       *widget.Label
	left, right *fyne.Container
	box         *fyne.Container
}

// NewApp creates the desktop front end for store.
func NewApp(store *config.Store, gate *launch.Gate, title string, opts ...launcher.Option) *App {
	return newApp(app.NewWithID(AppID), store, gate, title, opts...)
}

func newApp(fyneApp fyne.App, store *config.Store, gate *launch.Gate, title string, opts ...launcher.Option) *App {
	a := &App{
		fyneApp:  fyneApp,
		title:    title,
		panels:   make(map[types.Environment]*panel),
		editions: make(map[types.Edition]*tile),
		done:     make(chan struct{}),
	}
	a.mainWindow = fyneApp.NewWindow(title)
	a.ctrl = launcher.New(store, gate, a, opts...)

	cfg := store.Current()
	a.metrics = launcher.MetricsFor(cfg.WindowSize.Width, cfg.WindowSize.Height)
	a.setupMainWindow()
	a.mainWindow.Resize(fyne.NewSize(float32(cfg.WindowSize.Width), float32(cfg.WindowSize.Height)))
	return a
}

// Controller returns the controller behind the window.
func (a *App) Controller() *launcher.Controller {
	return a.ctrl
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run loads the workspaces, shows the window and blocks until it closes.
// Every value received on raises brings the window to the front.
func (a *App) Run(raises <-chan struct{}) error {
	a.ctrl.Refresh()
	go a.pollFrames()
	if raises != nil {
		go a.serveRaises(raises)
	}

	a.mainWindow.Show()
	a.fyneApp.Run()
	a.stop()
	return nil
}

func (a *App) serveRaises(raises <-chan struct{}) {
	for {
		select {
		case <-raises:
			log.Info("bringing window to the foreground")
			a.mainWindow.Show()
			a.mainWindow.RequestFocus()
		case <-a.done:
			return
		}
	}
}

// pollFrames samples the window size the way a render loop would and
// hands it to the controller, which ignores unchanged frames.
func (a *App) pollFrames() {
	ticker := time.NewTicker(framePoll)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.frame()
		case <-a.done:
			return
		}
	}
}

func (a *App) frame() {
	size := a.mainWindow.Canvas().Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	a.ctrl.Resize(int(size.Width), int(size.Height))
}

// Rescan reloads the workspaces.
func (a *App) Rescan() {
	a.ctrl.Refresh()
}

// Quit saves the window size and stops the application.
func (a *App) Quit() {
	a.saveSize()
	a.stop()
	a.fyneApp.Quit()
}

func (a *App) saveSize() {
	size := a.mainWindow.Canvas().Size()
	a.ctrl.Close(int(size.Width), int(size.Height))
}

func (a *App) stop() {
	a.quit.Do(func() { close(a.done) })
}

func (a *App) buttonWidth() float32 {
	a.metricsMu.Lock()
	defer a.metricsMu.Unlock()
	return a.metrics.ButtonWidth
}

func (a *App) panelWidth() float32 {
	a.metricsMu.Lock()
	defer a.metricsMu.Unlock()
	return a.metrics.PanelWidth
}
