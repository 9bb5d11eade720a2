package catalog

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"codelaunch/internal/config"
	"codelaunch/internal/errors"
	"codelaunch/pkg/testutils"
	"codelaunch/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileNames(entries []types.WorkspaceEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.FileName)
	}
	return names
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		env         types.Environment
		displayName string
		kind        errors.ErrorKind
	}{
		{"virtualized", "backend [WSL].code-workspace", types.Virtualized, "backend", errors.Unknown},
		{"native", "Game Engine [Win].code-workspace", types.Native, "Game Engine", errors.Unknown},
		{"virtualized wins", "both [WSL] [Win].code-workspace", types.Virtualized, "both", errors.Unknown},
		{"marker without space", "tight[Win].code-workspace", types.Native, "tight", errors.Unknown},
		{"unicode name", "café-ü_2 [Win].code-workspace", types.Native, "café-ü_2", errors.Unknown},
		{"no marker", "plain.code-workspace", 0, "", errors.MissingMarker},
		{"metacharacter", "evil;rm [WSL].code-workspace", 0, "", errors.UnsafeName},
		{"parentheses", "proj (old) [Win].code-workspace", 0, "", errors.UnsafeName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Classify(tt.file)
			if tt.kind != errors.Unknown {
				require.Error(t, err)
				assert.True(t, errors.IsScanWarning(err))
				assert.Equal(t, tt.kind, errors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.env, entry.Environment)
			assert.Equal(t, tt.displayName, entry.DisplayName)
			assert.Equal(t, tt.file, entry.FileName)
		})
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("a.code-workspace"))
	assert.True(t, ValidName("my proj [WSL].code-workspace"))
	assert.False(t, ValidName(".code-workspace"))
	assert.False(t, ValidName("a.code-workspace.bak"))
	assert.False(t, ValidName("dir/a.code-workspace"))
	assert.False(t, ValidName(`dir\a.code-workspace`))
	assert.False(t, ValidName("foo; rm -rf /.code-workspace"))
	assert.False(t, ValidName("$HOME.code-workspace"))
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	testutils.CreateWorkspaceFiles(t, root,
		"alpha [WSL].code-workspace",
		"beta [Win].code-workspace",
		"nested/deeper/gamma [WSL].code-workspace",
		"nomarker.code-workspace",
		"bad&name [Win].code-workspace",
		"notes [WSL].txt",
	)
	require.NoError(t, os.Mkdir(filepath.Join(root, "folder [Win].code-workspace"), 0755))

	cat := Walk(root)

	assert.Equal(t, []string{"alpha [WSL].code-workspace"}, fileNames(cat.Virtualized))
	assert.Equal(t, []string{"beta [Win].code-workspace"}, fileNames(cat.Native))
	assert.Equal(t, 2, cat.Len())

	for _, env := range types.Environments {
		for _, entry := range cat.Bucket(env) {
			assert.True(t, ValidName(entry.FileName), entry.FileName)
			assert.True(t, strings.HasSuffix(entry.FileName, types.WorkspaceSuffix))
			assert.Equal(t, env, entry.Environment)
		}
	}
}

func TestWalkSkipsNestedWorkspaces(t *testing.T) {
	root := t.TempDir()
	testutils.CreateWorkspaceFiles(t, root,
		"top [Win].code-workspace",
		"sub/inner [Win].code-workspace",
		"sub/deeper/inner [WSL].code-workspace",
	)

	// Every listed entry resolves to an existing file under root.
	for _, r := range []string{root, root + string(filepath.Separator)} {
		cat := Walk(r)
		assert.Equal(t, []string{"top [Win].code-workspace"}, fileNames(cat.Native))
		assert.Empty(t, cat.Virtualized)
		for _, entry := range cat.Native {
			assert.FileExists(t, filepath.Join(root, entry.FileName))
		}
	}
}

func TestWalkOrder(t *testing.T) {
	root := t.TempDir()
	testutils.CreateWorkspaceFiles(t, root, "b [Win].code-workspace", "a [Win].code-workspace", "c [Win].code-workspace")

	// WalkDir visits entries in lexical order.
	assert.Equal(t, []string{"a", "b", "c"}, displayNames(Scan(root, types.Native)))
	assert.Empty(t, Scan(root, types.Virtualized))
}

func displayNames(entries []types.WorkspaceEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.DisplayName)
	}
	return names
}

func TestWalkMissingRoot(t *testing.T) {
	cat := Walk(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Empty(t, cat.Virtualized)
	assert.Empty(t, cat.Native)
	assert.Zero(t, cat.Len())
}

func TestWalkUnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	testutils.CreateWorkspaceFiles(t, root, "ok [Win].code-workspace", "locked/hidden [WSL].code-workspace")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	cat := Walk(root)
	assert.Equal(t, []string{"ok [Win].code-workspace"}, fileNames(cat.Native))
	assert.Empty(t, cat.Virtualized)
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	testutils.CreateWorkspaceFiles(t, root, "one [WSL].code-workspace", "two [Win].code-workspace")

	cfg := config.New()
	cfg.NativeRoot = root
	cfg.VirtualizedRoot = filepath.Join(t.TempDir(), "unused")

	cat := Load(cfg)
	assert.Equal(t, []string{"one"}, displayNames(cat.Virtualized))
	assert.Equal(t, []string{"two"}, displayNames(cat.Native))
}

func TestWalkRecordsModified(t *testing.T) {
	root := t.TempDir()
	testutils.CreateWorkspaceFiles(t, root, "dated [Win].code-workspace")
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(root, "dated [Win].code-workspace"), stamp, stamp))

	cat := Walk(root)
	require.Len(t, cat.Native, 1)
	assert.True(t, stamp.Equal(cat.Native[0].Modified))
}
