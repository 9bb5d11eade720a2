package app

// Layout constants in pixels.
const (
	PanelSpacing  = 40
	ButtonSpacing = 12
)

// Metrics are the widths derived from the window size.
type Metrics struct {
	Width, Height int
	PanelWidth    float32
	ButtonWidth   float32
}

// MetricsFor splits width into two panels, each holding two button
// columns.
func MetricsFor(width, height int) Metrics {
	panel := float32(width-PanelSpacing) / 2
	button := panel/2 - ButtonSpacing
	if panel < 0 {
		panel = 0
	}
	if button < 0 {
		button = 0
	}
	return Metrics{
		Width:       width,
		Height:      height,
		PanelWidth:  panel,
		ButtonWidth: button,
	}
}
