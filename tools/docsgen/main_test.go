// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestGenerate(t *testing.T) {
	t.Setenv("WBCTL_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	folder := filepath.Join(t.TempDir(), "commands")

	var log bytes.Buffer
	require.NoError(t, generate(folder, &log))

	for _, name := range []string{"check", "diff", "highlight", "import", "stats", "versions", "completion"} {
		page, err := os.ReadFile(filepath.Join(folder, name+".md"))
		require.NoError(t, err, name)
		assert.Contains(t, string(page), "# wbctl "+name)
		assert.Contains(t, log.String(), name+".md")
	}

	page, err := os.ReadFile(filepath.Join(folder, "diff.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "`--store, -S`")
	assert.Contains(t, string(page), "wbctl diff [older] [newer] [options]")
}

func TestFlags(t *testing.T) {
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output format"},
			&cli.BoolFlag{Name: "titles", Usage: "show titles"},
		},
	}

	got := flags(cmd)
	require.Len(t, got, 2)
	assert.Equal(t, "--output, -o", got[0].Syntax)
	assert.Equal(t, "output format", got[0].Description)
	assert.Equal(t, "--titles", got[1].Syntax)
	assert.Empty(t, got[1].Default)
}
