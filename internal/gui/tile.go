//go:build !nogui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const tilePadding float32 = 10

var (
	tileColor         = color.NRGBA{R: 70, G: 70, B: 70, A: 255}
	tileSelectedColor = color.NRGBA{R: 0, G: 150, B: 50, A: 255}
	tileTextColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// tile is a tappable, highlightable label. Unlike widget.Button it never
// takes keyboard focus, so Tab and Space always reach the window's key
// handler instead of the toolkit's focus traversal.
type tile struct {
	widget.BaseWidget

	label    string
	selected bool
	onTapped func()
}

func newTile(label string, onTapped func()) *tile {
	t := &tile{label: label, onTapped: onTapped}
	t.ExtendBaseWidget(t)
	return t
}

// Tapped implements fyne.Tappable.
func (t *tile) Tapped(*fyne.PointEvent) {
	if t.onTapped != nil {
		t.onTapped()
	}
}

// SetSelected switches between the normal and the highlighted look.
func (t *tile) SetSelected(selected bool) {
	if t.selected == selected {
		return
	}
	t.selected = selected
	t.Refresh()
}

// Selected reports whether the tile is highlighted.
func (t *tile) Selected() bool {
	return t.selected
}

func (t *tile) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(tileColor)
	bg.CornerRadius = 4
	text := canvas.NewText(t.label, tileTextColor)
	text.Alignment = fyne.TextAlignCenter
	r := &tileRenderer{tile: t, bg: bg, text: text}
	r.Refresh()
	return r
}

type tileRenderer struct {
	tile *tile
	bg   *canvas.Rectangle
	text *canvas.Text
}

func (r *tileRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	textSize := r.text.MinSize()
	r.text.Move(fyne.NewPos(0, (size.Height-textSize.Height)/2))
	r.text.Resize(fyne.NewSize(size.Width, textSize.Height))
}

func (r *tileRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	return fyne.NewSize(textSize.Width+tilePadding*2, textSize.Height+tilePadding*2)
}

func (r *tileRenderer) Refresh() {
	if r.tile.selected {
		r.bg.FillColor = tileSelectedColor
	} else {
		r.bg.FillColor = tileColor
	}
	r.text.Text = r.tile.label
	r.bg.Refresh()
	r.text.Refresh()
}

func (r *tileRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.text}
}

func (r *tileRenderer) Destroy() {}
