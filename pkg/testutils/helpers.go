// Package testutils holds fixtures shared by the package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"codelaunch/internal/config"
	"codelaunch/pkg/types"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// CreateWorkspaceFiles creates an empty workspace file for every name below
// root. Names may contain slash-separated subdirectories.
func CreateWorkspaceFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	files := make(map[string]string, len(names))
	for _, name := range names {
		files[name] = "{}"
	}
	CreateTestFilesWithContent(t, root, files)
}

// CreateTestFilesWithContent creates test files with specific content,
// creating parent directories as needed.
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// Entry builds the entry a scan would produce for "<name> <marker>.code-workspace".
func Entry(env types.Environment, name string) types.WorkspaceEntry {
	return types.WorkspaceEntry{
		DisplayName: name,
		FileName:    name + " " + env.Marker() + types.WorkspaceSuffix,
		Environment: env,
	}
}

// NewStore loads a fresh configuration store in a temporary directory.
// mutate, when non-nil, is applied and persisted before returning.
func NewStore(t *testing.T, mutate func(*config.Config)) *config.Store {
	t.Helper()
	store, err := config.Load(filepath.Join(t.TempDir(), config.FileName))
	require.NoError(t, err)
	if mutate != nil {
		require.NoError(t, store.Update(mutate))
	}
	return store
}

// StripANSI removes terminal escape sequences so rendered views can be
// compared as plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
