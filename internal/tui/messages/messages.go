package messages

// RefreshMsg asks the model to rescan the workspace root.
type RefreshMsg struct{}

// RaiseMsg is delivered when a second launcher instance starts.
type RaiseMsg struct{}
