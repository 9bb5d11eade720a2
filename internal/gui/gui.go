//go:build !nogui

package gui

import (
	"image/color"

	launcher "codelaunch/internal/app"
	"codelaunch/internal/log"
	"codelaunch/internal/selection"
	"codelaunch/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var panelBorderColor = color.NRGBA{R: 110, G: 110, B: 110, A: 255}

func (a *App) setupMainWindow() {
	a.editions[types.Stable] = newTile(types.Stable.Label(), func() { a.ctrl.SetEdition(types.Stable) })
	a.editions[types.Insiders] = newTile(types.Insiders.Label(), func() { a.ctrl.SetEdition(types.Insiders) })
	editionRow := container.NewHBox(
		widget.NewLabel("Editor edition:"),
		a.editions[types.Stable],
		a.editions[types.Insiders],
	)

	panels := make([]fyne.CanvasObject, 0, len(types.Environments))
	for _, env := range types.Environments {
		p := a.newPanel(env)
		a.panels[env] = p
		panels = append(panels, p.box)
	}
	panelRow := container.New(&fixedColumns{width: a.panelWidth}, panels...)

	a.status = widget.NewLabel(launcher.Instructions)
	a.status.Wrapping = fyne.TextWrapWord

	a.content = container.NewBorder(editionRow, a.status, nil, nil, panelRow)
	a.mainWindow.SetContent(a.content)
	a.mainWindow.SetCloseIntercept(a.Quit)
	a.setupKeys()
}

func (a *App) newPanel(env types.Environment) *panel {
	p := &panel{
		title: widget.NewLabelWithStyle(env.Title(), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		left:  container.NewVBox(),
		right: container.NewVBox(),
	}
	columns := container.New(&fixedColumns{width: a.buttonWidth}, p.left, p.right)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = panelBorderColor
	border.StrokeWidth = 1
	border.CornerRadius = 4

	p.box = container.NewStack(
		border,
		container.NewPadded(container.NewBorder(p.title, nil, nil, nil, container.NewVScroll(columns))),
	)
	return p
}

// setupKeys installs the window key handler. On desktop the raw key-down
// hook is used since Tab never reaches the typed-key callback.
func (a *App) setupKeys() {
	c := a.mainWindow.Canvas()
	if dc, ok := c.(desktop.Canvas); ok {
		dc.SetOnKeyDown(a.keyDown)
		dc.SetOnKeyUp(a.keyUp)
		return
	}
	c.SetOnTypedKey(a.keyDown)
}

func (a *App) keyUp(ev *fyne.KeyEvent) {
	if ev.Name == desktop.KeyShiftLeft || ev.Name == desktop.KeyShiftRight {
		a.shift = false
	}
}

func (a *App) keyDown(ev *fyne.KeyEvent) {
	switch ev.Name {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		a.shift = true
	case fyne.KeyTab:
		if a.shift {
			a.ctrl.MoveFocus(types.Backward)
		} else {
			a.ctrl.MoveFocus(types.Forward)
		}
	case fyne.KeyRight, fyne.KeyDown:
		a.ctrl.MoveFocus(types.Forward)
	case fyne.KeyLeft, fyne.KeyUp:
		a.ctrl.MoveFocus(types.Backward)
	case fyne.KeyReturn, fyne.KeyEnter, fyne.KeySpace:
		a.ctrl.Activate()
	case fyne.KeyN:
		a.ctrl.SetEdition(types.Stable)
	case fyne.KeyI:
		a.ctrl.SetEdition(types.Insiders)
	case fyne.KeyR, fyne.KeyF5:
		a.ctrl.Refresh()
	case fyne.KeyQ, fyne.KeyX, fyne.KeyEscape:
		log.Debug("exit key pressed")
		a.Quit()
	}
}

// ShowItems implements launcher.View.
func (a *App) ShowItems(items []selection.Item) {
	for _, p := range a.panels {
		p.left.RemoveAll()
		p.right.RemoveAll()
	}
	a.tiles = make([]*tile, len(items))
	for i, item := range items {
		i := i
		t := newTile(item.Entry.DisplayName, func() { a.ctrl.ActivateAt(i) })
		a.tiles[i] = t

		p := a.panels[item.Entry.Environment]
		if item.Column == selection.Right {
			p.right.Add(t)
		} else {
			p.left.Add(t)
		}
	}
	for _, p := range a.panels {
		p.box.Refresh()
	}
}

// Highlight implements launcher.View.
func (a *App) Highlight(index int) {
	for i, t := range a.tiles {
		t.SetSelected(i == index)
	}
}

// SetStatus implements launcher.View.
func (a *App) SetStatus(text string) {
	a.status.SetText(text)
}

// SetEdition implements launcher.View.
func (a *App) SetEdition(edition types.Edition) {
	for e, t := range a.editions {
		t.SetSelected(e == edition)
	}
}

// Relayout implements launcher.View.
func (a *App) Relayout(m launcher.Metrics) {
	a.metricsMu.Lock()
	a.metrics = m
	a.metricsMu.Unlock()
	a.content.Refresh()
}
