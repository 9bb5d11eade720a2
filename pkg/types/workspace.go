package types

import "time"

// WorkspaceSuffix is the file name suffix of every workspace file.
const WorkspaceSuffix = ".code-workspace"

// WorkspaceEntry is one launchable workspace found by a catalog scan.
// Modified is the file's modification time as seen by the scan.
type WorkspaceEntry struct {
	DisplayName string      `json:"display_name" yaml:"display_name"`
	FileName    string      `json:"file_name" yaml:"file_name"`
	Environment Environment `json:"environment" yaml:"environment"`
	Modified    time.Time   `json:"modified" yaml:"modified"`
}
