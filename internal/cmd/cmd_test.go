package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codelaunch/internal/config"
	"codelaunch/internal/errors"
	"codelaunch/pkg/testutils"
	"codelaunch/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type env struct {
	dir     string
	cfgPath string
	root    string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "workspaces")
	testutils.CreateWorkspaceFiles(t, root,
		"api [WSL].code-workspace",
		"web [WSL].code-workspace",
		"team/game [Win].code-workspace",
		"notes [Win].txt",
		"stray.code-workspace",
	)

	cfg := config.New()
	cfg.NativeRoot = root
	cfg.VirtualizedRoot = "/mnt/ws"
	e := &env{dir: dir, cfgPath: filepath.Join(dir, config.FileName), root: root}
	require.NoError(t, config.SaveConfig(cfg, e.cfgPath))
	return e
}

func (e *env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("1.2.3")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.cfgPath, "--log-file", filepath.Join(e.dir, "test.log")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "codelaunch 1.2.3\n", out)
}

func TestListFormats(t *testing.T) {
	e := newEnv(t)

	t.Run("table", func(t *testing.T) {
		out, err := e.run(t, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "ENVIRONMENT")
		assert.Contains(t, out, "MODIFIED")
		assert.Contains(t, out, "api [WSL].code-workspace")
		assert.Contains(t, out, "game [Win].code-workspace")
		assert.NotContains(t, out, "stray")
		assert.Less(t, strings.Index(out, "api"), strings.Index(out, "game"), "virtualized entries come first")
	})

	t.Run("json", func(t *testing.T) {
		out, err := e.run(t, "list", "--format", "json")
		require.NoError(t, err)
		var entries []types.WorkspaceEntry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, 3)
		assert.Equal(t, "api", entries[0].DisplayName)
		assert.Equal(t, "web", entries[1].DisplayName)
		assert.Equal(t, types.Native, entries[2].Environment)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := e.run(t, "list", "--format", "yaml")
		require.NoError(t, err)
		var entries []types.WorkspaceEntry
		require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
		assert.Len(t, entries, 3)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := e.run(t, "list", "--format", "xml")
		assert.Error(t, err)
	})
}

func TestListEmpty(t *testing.T) {
	e := newEnv(t)
	cfg := config.New()
	cfg.NativeRoot = filepath.Join(e.dir, "missing")
	require.NoError(t, config.SaveConfig(cfg, e.cfgPath))

	out, err := e.run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "No workspaces found.\n", out)
}

func TestLaunchDryRun(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "virtualized from marker",
			args: []string{"api [WSL].code-workspace"},
			want: `wsl code "/mnt/ws/api [WSL].code-workspace"`,
		},
		{
			name: "native insiders",
			args: []string{"game [Win].code-workspace", "--insiders"},
			want: `code-insiders.cmd "` + e.root + `/game [Win].code-workspace"`,
		},
		{
			name: "explicit environment",
			args: []string{"plain.code-workspace", "--env", "native", "--stable"},
			want: `code.cmd ` + e.root + `/plain.code-workspace`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.run(t, append([]string{"launch", "--dry-run"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestLaunchRefused(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "launch", "--dry-run", "plain.code-workspace")
	assert.Error(t, err, "no marker and no --env")

	_, err = e.run(t, "launch", "--dry-run", "--env", "native", "notes.txt")
	assert.True(t, errors.IsValidation(err))

	_, err = e.run(t, "launch", "--dry-run", "--env", "moon", "api [WSL].code-workspace")
	assert.Error(t, err)

	_, err = e.run(t, "launch", "--dry-run", "--insiders", "--stable", "api [WSL].code-workspace")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, e.cfgPath+"\n", out)

	out, err = e.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"native_root": "`+e.root+`"`)

	out, err = e.run(t, "config", "show", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "virtualized_root: /mnt/ws")

	_, err = e.run(t, "config", "init")
	assert.Error(t, err, "existing file is kept")

	out, err = e.run(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default configuration")
	cfg, err := config.Load(e.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultNativeRoot, cfg.Current().NativeRoot)
}

func TestInvalidConfigFails(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.WriteFile(e.cfgPath, []byte("{ not json"), 0644))

	_, err := e.run(t, "list")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))

	_, err = e.run(t, "version")
	assert.NoError(t, err, "version does not read the configuration")
}

func TestLogFileWritten(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "--debug", "version")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(e.dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "====== APPLICATION STARTING ======")
}
