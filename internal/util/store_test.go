// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStore(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "budget.snapshot.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	tests := []struct {
		name     string
		store    string
		wantPath string
		wantBook string
		wantErr  bool
		errIs    error
	}{
		{name: "dir", store: dir, wantPath: dir},
		{name: "dir_with_book", store: dir + "::budget", wantPath: dir, wantBook: "budget"},
		{name: "file", store: file, wantPath: file},
		{name: "file_with_book", store: file + "::budget", wantErr: true, errIs: os.ErrInvalid},
		{name: "empty", store: "", wantErr: true, errIs: os.ErrInvalid},
		{name: "missing", store: filepath.Join(dir, "nope"), wantErr: true, errIs: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, book, err := ParseStore(tt.store)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantBook, book)
		})
	}
}

func TestParseStore_Relative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "snaps"), 0o700))
	t.Chdir(dir)

	path, book, err := ParseStore("snaps::q3")
	require.NoError(t, err)
	assert.Equal(t, "q3", book)
	assert.Equal(t, "snaps", filepath.Base(path))
	assert.True(t, filepath.IsAbs(path))

	path, _, err = ParseStore("::q3")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
}
