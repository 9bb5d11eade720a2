package types

import (
	"encoding/json"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		in      string
		want    Environment
		wantErr bool
	}{
		{"native", Native, false},
		{"Win", Native, false},
		{" wsl ", Virtualized, false},
		{"virtualized", Virtualized, false},
		{"mars", Native, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEnvironment(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvironmentNames(t *testing.T) {
	assert.Equal(t, "[WSL]", Virtualized.Marker())
	assert.Equal(t, "[Win]", Native.Marker())
	assert.Equal(t, "WSL Workspaces", Virtualized.Title())
	assert.Equal(t, []Environment{Virtualized, Native}, Environments)
}

func TestEditionText(t *testing.T) {
	var cfg struct {
		Edition Edition `json:"edition"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"edition":"normal"}`), &cfg))
	assert.Equal(t, Stable, cfg.Edition)
	require.NoError(t, json.Unmarshal([]byte(`{"edition":"insiders"}`), &cfg))
	assert.Equal(t, Insiders, cfg.Edition)
	assert.Error(t, json.Unmarshal([]byte(`{"edition":"nightly"}`), &cfg))

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"edition":"insiders"}`, string(data))
	assert.Equal(t, "Insiders", Insiders.Label())
}

func TestDirectionStep(t *testing.T) {
	assert.Equal(t, 1, Forward.Step())
	assert.Equal(t, -1, Backward.Step())
}

func TestDefaultKeyMap(t *testing.T) {
	k := DefaultKeyMap()
	for _, b := range []key.Binding{k.Forward, k.Backward, k.Activate, k.Stable, k.Insiders, k.Refresh, k.Quit} {
		assert.True(t, b.Enabled())
		assert.NotEmpty(t, b.Keys())
	}
	assert.Contains(t, k.Quit.Keys(), "esc")
	assert.Len(t, k.FullHelp(), 2)
}
