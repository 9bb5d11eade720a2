//go:build !nogui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// fixedColumns lays out its objects side by side, each width() wide. The
// width comes from the latest resize metrics; when the available space is
// smaller, the columns share it evenly.
type fixedColumns struct {
	width func() float32
}

func (l *fixedColumns) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	pad := theme.Padding()
	w := l.width()
	if avail := (size.Width - pad*float32(len(objects)-1)) / float32(len(objects)); w <= 0 || w > avail {
		w = avail
	}
	x := float32(0)
	for _, o := range objects {
		o.Move(fyne.NewPos(x, 0))
		o.Resize(fyne.NewSize(w, size.Height))
		x += w + pad
	}
}

func (l *fixedColumns) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var total fyne.Size
	for i, o := range objects {
		m := o.MinSize()
		if i > 0 {
			total.Width += theme.Padding()
		}
		total.Width += m.Width
		if m.Height > total.Height {
			total.Height = m.Height
		}
	}
	return total
}
