package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{
			name: "no flags",
			args: nil,
			want: options{},
		},
		{
			name: "config and csv",
			args: []string{"-config", "conf.yaml", "-csv", "data/validations.csv"},
			want: options{configFile: "conf.yaml", csvPath: "data/validations.csv"},
		},
		{
			name:    "unknown flag",
			args:    []string{"-port", "9000"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := parseFlags(tt.args, &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
data:
  csv_path: from-file.csv
  top_stops: 5
`)

	t.Run("file values", func(t *testing.T) {
		cfg, err := loadConfig(options{configFile: path})
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "from-file.csv", cfg.Data.CSVPath)
		assert.Equal(t, 5, cfg.Data.TopStops)
	})

	t.Run("csv flag wins", func(t *testing.T) {
		cfg, err := loadConfig(options{configFile: path, csvPath: "flag.csv"})
		require.NoError(t, err)
		assert.Equal(t, "flag.csv", cfg.Data.CSVPath)
	})

	t.Run("invalid file", func(t *testing.T) {
		bad := writeConfig(t, "server:\n  port: -1\n")
		_, err := loadConfig(options{configFile: bad})
		assert.Error(t, err)
	})
}

func TestRun_MissingExport(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 18080\n")
	missing := filepath.Join(t.TempDir(), "missing.csv")

	var out bytes.Buffer
	err := run(context.Background(), []string{"-config", path, "-csv", missing}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load validations")
}
