package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"routeengine/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEngine_EmptyPathUsesDefaults(t *testing.T) {
	e, err := config.LoadEngine("")

	require.NoError(t, err)
	assert.Equal(t, config.DefaultPalette, e.Palette)
	assert.Equal(t, []string{"Unassigned"}, e.SentinelDriverNames)
	assert.Equal(t, time.UTC, e.Location())
	assert.Equal(t, config.DefaultRunHistoryLimit, e.RunHistoryLimit)
	assert.Equal(t, "routes", e.ChannelPrefix)
}

func TestLoadEngine_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
palette: ["#112233", "#445566"]
sentinel_driver_names: ["Unassigned", "Pool"]
timezone: America/New_York
run_history_limit: 5
channel_prefix: dispatch
`), 0o600))

	e, err := config.LoadEngine(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"#112233", "#445566"}, e.Palette)
	assert.Equal(t, []string{"Unassigned", "Pool"}, e.SentinelDriverNames)
	assert.Equal(t, "America/New_York", e.Location().String())
	assert.Equal(t, 5, e.RunHistoryLimit)
	assert.Equal(t, "dispatch", e.ChannelPrefix)
}

func TestLoadEngine_MissingFile(t *testing.T) {
	_, err := config.LoadEngine(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestParseEngine_PartialFileKeepsDefaults(t *testing.T) {
	e, err := config.ParseEngine([]byte("timezone: Europe/Berlin\n"))

	require.NoError(t, err)
	assert.Equal(t, config.DefaultPalette, e.Palette)
	assert.Equal(t, "Europe/Berlin", e.Location().String())
}

func TestParseEngine_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad color", `palette: ["red"]`, "palette[0]"},
		{"blank sentinel", `sentinel_driver_names: ["  "]`, "sentinel_driver_names[0]"},
		{"bad timezone", `timezone: Mars/Olympus`, "timezone"},
		{"negative limit", `run_history_limit: -1`, "run_history_limit"},
		{"not yaml", `palette: [`, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseEngine([]byte(tt.yaml))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDefaultPaletteIsNotShared(t *testing.T) {
	e := config.DefaultEngine()
	e.Palette[0] = "#000000"

	assert.NotEqual(t, "#000000", config.DefaultPalette[0])
}
