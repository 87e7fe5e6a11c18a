// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"github.com/xuri/excelize/v2"

	"github.com/tfctl/wbctl/internal/loader"
	"github.com/tfctl/wbctl/internal/meta"
	"github.com/tfctl/wbctl/internal/snapshot"
)

const (
	bookV1 = `{"id":"wb","name":"Book","serial":1,"sheetOrder":["s1"],"sheets":{"s1":{"id":"s1","name":"One","rowCount":2,"columnCount":1,"cellData":{"0":{"0":{"v":1}}}}}}`
	bookV2 = `{"id":"wb","name":"Book","serial":2,"sheetOrder":["s1"],"sheets":{"s1":{"id":"s1","name":"One","rowCount":2,"columnCount":1,"cellData":{"0":{"0":{"v":2}},"1":{"0":{"v":"new"}}}}}}`
)

// hermetic points the config file at an empty one so a developer's own
// wbctl.yaml cannot leak into the tests.
func hermetic(t *testing.T) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "wbctl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("{}\n"), 0o644))
	t.Setenv("WBCTL_CFG_FILE", cfg)
	t.Setenv("WBCTL_OUTPUT", "")
	t.Setenv("WBCTL_STORE", "")
	t.Setenv("WBCTL_PASSPHRASE", "")
}

// store writes docs, oldest first, as a local snapshot history and returns
// its directory.
func store(t *testing.T, docs ...string) string {
	t.Helper()
	dir := t.TempDir()
	base := filepath.Join(dir, "book.snapshot.json")

	then := time.Now().Add(-time.Hour)
	for i, doc := range docs {
		p := base
		if i < len(docs)-1 {
			p = base + "." + string(rune('1'+i))
		}
		require.NoError(t, os.WriteFile(p, []byte(doc), 0o644))
		ts := then.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, ts, ts))
	}
	return dir
}

// runApp runs wbctl with args and returns what it wrote and the error.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	args = append([]string{"wbctl"}, args...)

	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err = app.Run(context.Background(), args)
	return buf.String(), err
}

func TestInitApp(t *testing.T) {
	hermetic(t)

	app, err := InitApp(context.Background(), []string{"wbctl", "diff"})
	require.NoError(t, err)

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)

		m := GetMeta(cmd)
		assert.Equal(t, []string{"wbctl", "diff"}, m.Args)

		for i := 1; i < len(cmd.Flags); i++ {
			assert.LessOrEqual(t, cmd.Flags[i-1].Names()[0], cmd.Flags[i].Names()[0], cmd.Name)
		}
	}
	assert.Equal(t, []string{"check", "diff", "highlight", "import", "stats", "versions", "completion"}, names)
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{Metadata: map[string]any{"meta": "nope"}}))

	m := meta.Meta{Args: []string{"wbctl"}}
	assert.Equal(t, m, GetMeta(&cli.Command{Metadata: map[string]any{"meta": m}}))
}

func TestBuildAttrs(t *testing.T) {
	var got []string
	cmd := &cli.Command{
		Name:  "test",
		Flags: []cli.Flag{&cli.StringFlag{Name: "attrs"}},
		Action: func(_ context.Context, cmd *cli.Command) error {
			al, err := BuildAttrs(cmd, "sheet", "old.text:old")
			if err != nil {
				return err
			}
			for _, a := range al {
				got = append(got, a.Key+"="+a.OutputKey+"/"+a.TransformSpec)
			}
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), []string{"test", "--attrs", "*::u,cell"}))
	assert.Equal(t, []string{"sheet=sheet/u,", "old.text=old/u,", "*=*/u,u", "cell=cell/u,"}, got)
}

func TestVersions(t *testing.T) {
	hermetic(t)
	dir := store(t, bookV1, bookV2)

	out, err := runApp(t, "versions", "--store", dir, "-o", "json", "-a", "path")
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "book.snapshot.json", rows[0]["id"])
	assert.EqualValues(t, 2, rows[0]["serial"])
	assert.Equal(t, filepath.Join(dir, "book.snapshot.json.1"), rows[1]["path"])

	out, err = runApp(t, "versions", "--store", dir, "-o", "json", "--limit", "1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 1)
}

func TestVersions_Schema(t *testing.T) {
	hermetic(t)

	out, err := runApp(t, "versions", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, "serial")
	assert.Contains(t, out, "created-at")
}

func TestDiff(t *testing.T) {
	hermetic(t)
	dir := store(t, bookV1, bookV2)

	out, err := runApp(t, "diff", "--store", dir, "-o", "json", "--sort", "cell")
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Equal(t, []map[string]interface{}{
		{"sheet": "One", "cell": "A1", "type": "modified", "old": "1", "new": "2"},
		{"sheet": "One", "cell": "A2", "type": "added", "old": nil, "new": "new"},
	}, rows)
}

func TestDiff_Text(t *testing.T) {
	hermetic(t)
	dir := store(t, bookV1, bookV2)

	out, err := runApp(t, "diff", "--store", dir, "--titles", "--filter", "type=added")
	require.NoError(t, err)
	assert.Contains(t, out, "cell")
	assert.Contains(t, out, "A2")
	assert.NotContains(t, out, "A1")
	assert.Contains(t, out, "1 cell added, 1 cell modified")
}

func TestDiff_ExplicitSpecs(t *testing.T) {
	hermetic(t)
	dir := store(t, bookV1, bookV2)

	// Reversed order: the new cell reads as deleted.
	out, err := runApp(t, "diff", "--store", dir, "-o", "json", "--filter", "cell=A2", "SV~0", "SV~1")
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "deleted", rows[0]["type"])
}

func TestDiff_PickerCancelled(t *testing.T) {
	hermetic(t)
	dir := store(t, bookV1, bookV2)

	saved := picker
	t.Cleanup(func() { picker = saved })
	picker = func([]*snapshot.Version) []*snapshot.Version { return nil }

	out, err := runApp(t, "diff", "--store", dir, "+")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDiff_Errors(t *testing.T) {
	hermetic(t)
	dir := store(t, bookV1, bookV2)

	tests := []struct {
		name string
		args []string
	}{
		{"missing store", []string{"diff", "--store", filepath.Join(dir, "nope")}},
		{"unknown version", []string{"diff", "--store", dir, "SV~5"}},
		{"bad filter", []string{"diff", "--store", dir, "--filter", "=x"}},
		{"bad output", []string{"diff", "--store", dir, "-o", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestDiff_Encrypted(t *testing.T) {
	hermetic(t)

	kp, err := loader.DefaultKeyProvider()
	require.NoError(t, err)
	enc, err := loader.Encrypt([]byte(bookV2), "secret", kp)
	require.NoError(t, err)
	dir := store(t, bookV1, string(enc))

	out, err := runApp(t, "diff", "--store", dir, "-o", "json", "-p", "secret")
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 2)
}

func TestStats(t *testing.T) {
	hermetic(t)
	dir := store(t, bookV1, bookV2)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"brief", []string{"--brief"}, "1 cell added, 1 cell modified\n"},
		{"brief locale", []string{"--brief", "--locale", "zh-CN"}, "新增 1 个单元格，修改 1 个单元格\n"},
		{"json", []string{"-o", "json"}, `"totalChanges":2`},
		{"text", []string{}, "total: 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, append([]string{"stats", "--store", dir}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.expected)
		})
	}
}

func TestCheck(t *testing.T) {
	hermetic(t)

	t.Run("changed", func(t *testing.T) {
		out, err := runApp(t, "check", "--store", store(t, bookV1, bookV2))
		require.Error(t, err)

		var exitErr cli.ExitCoder
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 1, exitErr.ExitCode())
		assert.Equal(t, "1 cell added, 1 cell modified\n", out)
	})

	t.Run("unchanged", func(t *testing.T) {
		out, err := runApp(t, "check", "--store", store(t, bookV1, bookV1))
		require.NoError(t, err)
		assert.Equal(t, "no changes\n", out)
	})

	t.Run("quiet", func(t *testing.T) {
		out, err := runApp(t, "check", "--quiet", "--store", store(t, bookV1, bookV1))
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func writeBook(t *testing.T, path string, values map[string]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range values {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestImportAndHighlight(t *testing.T) {
	hermetic(t)
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "book.xlsx")
	snap := filepath.Join(dir, "book.snapshot.json")

	writeBook(t, xlsx, map[string]interface{}{"A1": "Header", "B2": 42})
	out, err := runApp(t, "import", "--out", snap, xlsx)
	require.NoError(t, err)
	assert.Equal(t, snap+" serial 1\n", out)

	// Make sure the rotated version sorts as the older one.
	then := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(snap, then, then))

	writeBook(t, xlsx, map[string]interface{}{"A1": "Header", "B2": 43, "C3": true})
	out, err = runApp(t, "import", "--out", snap, xlsx)
	require.NoError(t, err)
	assert.Equal(t, snap+" serial 2\n", out)
	assert.FileExists(t, snap+".1")

	out, err = runApp(t, "stats", "--store", dir+"::book", "--brief")
	require.NoError(t, err)
	assert.Equal(t, "1 cell added, 1 cell modified\n", out)

	out, err = runApp(t, "highlight", "--store", dir+"::book", "--modified", "#00FF00", xlsx)
	require.NoError(t, err)
	highlighted := filepath.Join(dir, "book.highlighted.xlsx")
	assert.Equal(t, "2 cells applied in "+highlighted+"\n", out)

	f, err := excelize.OpenFile(highlighted)
	require.NoError(t, err)
	defer f.Close()

	styleID, err := f.GetCellStyle("Sheet1", "B2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotEmpty(t, style.Fill.Color)
	assert.Contains(t, strings.ToUpper(style.Fill.Color[0]), "00FF00")

	reverted := filepath.Join(dir, "reverted.xlsx")
	out, err = runApp(t, "highlight", "--store", dir+"::book", "--revert", "--out", reverted, xlsx)
	require.NoError(t, err)
	assert.Equal(t, "2 cells reverted in "+reverted+"\n", out)
}

func TestImport_Encrypt(t *testing.T) {
	hermetic(t)
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "book.xlsx")
	snap := filepath.Join(dir, "book.snapshot.json")

	writeBook(t, xlsx, map[string]interface{}{"A1": 1})
	_, err := runApp(t, "import", "--out", snap, "--encrypt", "-p", "secret", xlsx)
	require.NoError(t, err)

	doc, err := os.ReadFile(snap)
	require.NoError(t, err)
	require.True(t, loader.IsEncrypted(doc))

	s, err := LoadSnapshot("book", doc, func() (string, error) { return "secret", nil })
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Serial)
	assert.Equal(t, snapshot.Number(1), s.Sheet("sheet-1").Cell(0, 0).V)
}

func TestImport_FailedEncryptKeepsCurrent(t *testing.T) {
	hermetic(t)
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "book.xlsx")
	snap := filepath.Join(dir, "book.snapshot.json")

	writeBook(t, xlsx, map[string]interface{}{"A1": 1})
	_, err := runApp(t, "import", "--out", snap, xlsx)
	require.NoError(t, err)
	before, err := os.ReadFile(snap)
	require.NoError(t, err)

	// No passphrase and no terminal to prompt on.
	writeBook(t, xlsx, map[string]interface{}{"A1": 2})
	_, err = runApp(t, "import", "--out", snap, "--encrypt", xlsx)
	require.Error(t, err)

	after, err := os.ReadFile(snap)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoFileExists(t, snap+".1")
	leftovers, err := filepath.Glob(snap + ".tmp-*")
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	out, err := runApp(t, "import", "--out", snap, xlsx)
	require.NoError(t, err)
	assert.Equal(t, snap+" serial 2\n", out)
	assert.FileExists(t, snap+".1")
}

func TestImport_Errors(t *testing.T) {
	hermetic(t)

	_, err := runApp(t, "import")
	assert.Error(t, err)

	_, err = runApp(t, "import", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestHighlight_NoWorkbook(t *testing.T) {
	hermetic(t)

	_, err := runApp(t, "highlight")
	assert.Error(t, err)
}

func TestLoadSnapshot_Xlsx(t *testing.T) {
	xlsx := filepath.Join(t.TempDir(), "book.xlsx")
	writeBook(t, xlsx, map[string]interface{}{"B2": "x"})

	doc, err := os.ReadFile(xlsx)
	require.NoError(t, err)

	s, err := LoadSnapshot("book", doc, nil)
	require.NoError(t, err)
	assert.Equal(t, snapshot.String("x"), s.Sheet("sheet-1").Cell(1, 1).V)

	_, err = LoadSnapshot("junk", []byte("not a snapshot"), nil)
	assert.Error(t, err)
}

func TestHighlightedPath(t *testing.T) {
	assert.Equal(t, "/tmp/book.highlighted.xlsx", highlightedPath("/tmp/book.xlsx"))
	assert.Equal(t, "book.highlighted", highlightedPath("book"))
}

func TestCompletion(t *testing.T) {
	hermetic(t)

	out, err := runApp(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _wbctl wbctl")

	out, err = runApp(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "compdef _wbctl wbctl")
}
