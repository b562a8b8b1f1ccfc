package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsp_aco/modules/algorithms/aco"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "aco.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[colony]
ants = 10
beta = 5.0
seed = 99
workers = 4
local_search = true

[bench]
runs = 3
rho = { start = 0.5, end = 0.7, step = 0.1 }
`)

	file, err := Load(path)
	require.NoError(t, err)

	want := aco.DefaultConfig()
	want.Ants = 10
	want.Beta = 5
	want.Seed = 99
	want.Workers = 4
	want.LocalSearch = true
	assert.Equal(t, want, file.Colony)

	assert.Equal(t, 3, file.Bench.Runs)
	assert.Equal(t, []float64{aco.DefaultConfig().Alpha}, file.Bench.Alpha.Values())

	rhos := file.Bench.Rho.Values()
	require.Len(t, rhos, 3)
	assert.InDelta(t, 0.7, rhos[2], 1e-12)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{name: "unknown key", content: "[colony]\nantz = 3\n", wantMsg: "unknown keys: colony.antz"},
		{name: "invalid colony", content: "[colony]\nrho = 2.0\n", wantErr: aco.ErrInvalidConfig},
		{name: "no runs", content: "[bench]\nruns = 0\n", wantMsg: "bench runs"},
		{name: "syntax", content: "[colony\n", wantMsg: "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
