// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points WBCTL_CFG_FILE at a testdata file and resets the
// global Config so the next lookup reloads.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err)

	t.Setenv("WBCTL_CFG_FILE", absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "zh", cfg.Data["locale"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				hl, ok := cfg.Data["highlight"].(map[string]interface{})
				require.True(t, ok, "highlight should be a map")
				assert.Equal(t, "#00FF00", hl["added"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Empty(t, cfg.Data)
			},
		},
		{
			name:     "invalid yaml",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_Namespace(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	cfg, err := Load("diff")
	require.NoError(t, err)
	assert.Equal(t, "diff", cfg.Namespace)

	got, err := GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "json", got, "namespaced key wins")

	Config.Namespace = "stats"
	got, err = GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "text", got, "falls back to bare key")
}

func TestGetString(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	tests := []struct {
		name    string
		key     string
		def     []string
		want    string
		wantErr bool
	}{
		{name: "top level", key: "output", want: "text"},
		{name: "nested", key: "highlight.added", want: "#00FF00"},
		{name: "missing with default", key: "highlight.deleted", def: []string{"#FFC7CE"}, want: "#FFC7CE"},
		{name: "missing", key: "highlight.deleted", wantErr: true},
		{name: "wrong type", key: "summary.sheet_estimate", wantErr: true},
		{name: "path through scalar", key: "output.nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetString(tt.key, tt.def...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetString_NotFoundSentinel(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	_, err := GetString("no.such.key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetInt(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	got, err := GetInt("summary.sheet_estimate")
	require.NoError(t, err)
	assert.Equal(t, 25, got)

	got, err = GetInt("summary.missing", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	_, err = GetInt("output")
	assert.Error(t, err)
}

func TestGetBool(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	got, err := GetBool("highlight.enabled")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = GetBool("highlight.missing", true)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = GetBool("output")
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	got, err := GetDuration("highlight.fade")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, got)

	got, err = GetDuration("highlight.fade_ms")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, got)

	got, err = GetDuration("highlight.missing", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, got)

	_, err = GetDuration("output")
	assert.Error(t, err)
}

func TestGetStringSlice(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	got, err := GetStringSlice("diff.defaults")
	require.NoError(t, err)
	assert.Equal(t, []string{"--titles", "--color"}, got)

	_, err = GetStringSlice("tags")
	assert.Error(t, err, "non-string elements")

	got, err = GetStringSlice("stats.defaults", []string{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFile(t *testing.T) {
	t.Run("env points at file", func(t *testing.T) {
		setupTestConfig(t, "simple.yaml")
		path, err := File()
		require.NoError(t, err)
		assert.Equal(t, "simple.yaml", filepath.Base(path))
	})

	t.Run("env points at missing file", func(t *testing.T) {
		t.Setenv("WBCTL_CFG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := File()
		assert.Error(t, err)
	})

	t.Run("env points at directory", func(t *testing.T) {
		t.Setenv("WBCTL_CFG_FILE", t.TempDir())
		_, err := File()
		assert.ErrorContains(t, err, "directory")
	})
}
