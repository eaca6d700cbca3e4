package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePort(t *testing.T) {
	cases := []struct {
		arg  string
		want int
	}{
		{"", DefaultPort},
		{"8081", 8081},
		{"1024", 1024},
		{"65535", 65535},
		{"1023", DefaultPort},
		{"65536", DefaultPort},
		{"0", DefaultPort},
		{"-1", DefaultPort},
		{"not-a-port", DefaultPort},
		{"80 80", DefaultPort},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParsePort(tc.arg, DefaultPort), "arg=%q", tc.arg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.App.Port)
	assert.Nil(t, cfg.App.DBPath)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[app]\nport = 9000\nsample-count = 250\nbins = 20\ndb-path = \"/tmp/sampler.db\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.App.Port)
	assert.Equal(t, 9000, *cfg.App.Port)
	require.NotNil(t, cfg.App.SampleCount)
	assert.Equal(t, 250, *cfg.App.SampleCount)
	require.NotNil(t, cfg.App.Bins)
	assert.Equal(t, 20, *cfg.App.Bins)
	require.NotNil(t, cfg.App.DBPath)
	assert.Equal(t, "/tmp/sampler.db", *cfg.App.DBPath)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[app\nport="), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
