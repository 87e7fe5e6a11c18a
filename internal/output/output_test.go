// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/wbctl/internal/attrs"
	"github.com/tfctl/wbctl/internal/differ"
	"github.com/tfctl/wbctl/internal/snapshot"
	"github.com/tfctl/wbctl/internal/summary"
)

// books returns an old and new snapshot: sheet s1 has a value change, a style
// change and an added formula cell, s2 is deleted and s3 added.
func books() (*snapshot.Snapshot, *snapshot.Snapshot) {
	older := snapshot.New("wb", "Book")
	older.AddSheet(snapshot.NewSheet("s1", "Data", 20, 5).
		Set(0, 0, &snapshot.Cell{V: snapshot.Number(1)}).
		Set(1, 1, &snapshot.Cell{V: snapshot.String("x"), S: snapshot.StyleProps(map[string]any{"fill": "#FFFFFF", "font": "Arial"})}))
	older.AddSheet(snapshot.NewSheet("s2", "Gone", 1, 1))

	newer := snapshot.New("wb", "Book")
	newer.AddSheet(snapshot.NewSheet("s1", "Data", 20, 5).
		Set(0, 0, &snapshot.Cell{V: snapshot.Number(2.5)}).
		Set(1, 1, &snapshot.Cell{V: snapshot.String("x"), S: snapshot.StyleProps(map[string]any{"fill": "#000000", "font": "Arial"})}).
		Set(11, 1, &snapshot.Cell{V: snapshot.Number(3), F: "=SUM(A1:A3)"}))
	newer.AddSheet(snapshot.NewSheet("s3", "Fresh", 1, 1))

	return older, newer
}

func diffRows(t *testing.T) []DiffRow {
	t.Helper()
	older, newer := books()
	d := differ.DiffWorkbooks(older, newer)
	return DiffRows(&d, older, newer)
}

// run executes action inside a command carrying the listing flags.
func run(t *testing.T, args []string, action func(cmd *cli.Command) error) {
	t.Helper()
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "brief"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return action(cmd)
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func diffAttrs() attrs.AttrList {
	return attrs.AttrList{
		{Key: "sheet", OutputKey: "sheet", Include: true},
		{Key: "cell", OutputKey: "cell", Include: true},
		{Key: "type", OutputKey: "type", Include: true},
		{Key: "old.text", OutputKey: "old", Include: true},
		{Key: "new.text", OutputKey: "new", Include: true},
		{Key: "row", OutputKey: "row", Include: false},
	}
}

func TestDiffRows(t *testing.T) {
	rows := diffRows(t)
	require.Len(t, rows, 5)

	assert.Equal(t, DiffRow{SheetID: "s3", Sheet: "Fresh", Scope: ScopeSheet, Type: "added"}, rows[0])
	assert.Equal(t, DiffRow{SheetID: "s2", Sheet: "Gone", Scope: ScopeSheet, Type: "deleted"}, rows[1])

	a1 := rows[2]
	assert.Equal(t, "A1", a1.Cell)
	assert.Equal(t, "modified", a1.Type)
	assert.Equal(t, "Data", a1.Sheet)
	require.NotNil(t, a1.Row)
	assert.Equal(t, 0, *a1.Row)
	assert.Equal(t, "1", a1.Old.Text)
	assert.Equal(t, "2.5", a1.New.Text)
	assert.Nil(t, a1.StyleKeys)

	b2 := rows[3]
	assert.Equal(t, "B2", b2.Cell)
	assert.Equal(t, []string{"fill"}, b2.StyleKeys)

	b12 := rows[4]
	assert.Equal(t, "B12", b12.Cell)
	assert.Equal(t, "added", b12.Type)
	assert.Nil(t, b12.Old)
	require.NotNil(t, b12.New)
	assert.Equal(t, "=SUM(A1:A3)", b12.New.Text)
	assert.Equal(t, float64(3), b12.New.Value)
}

func TestDiffRows_Empty(t *testing.T) {
	assert.Empty(t, DiffRows(nil, nil, nil))

	d := differ.Empty()
	d.AddedSheets = []string{"s9"}
	rows := DiffRows(&d, nil, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "s9", rows[0].Sheet)
}

func TestStyleKeys(t *testing.T) {
	props := func(m map[string]any) *snapshot.Style { return snapshot.StyleProps(m) }

	tests := []struct {
		name string
		a, b *snapshot.Style
		want []string
	}{
		{name: "both_nil"},
		{name: "equal_refs", a: snapshot.StyleRef("xf:1"), b: snapshot.StyleRef("xf:1")},
		{name: "refs", a: snapshot.StyleRef("xf:1"), b: snapshot.StyleRef("xf:2"), want: []string{"*"}},
		{name: "appeared", b: props(map[string]any{"bold": true}), want: []string{"*"}},
		{name: "props", a: props(map[string]any{"bold": true, "fill": "#FFF", "size": 10.0}),
			b: props(map[string]any{"bold": false, "fill": "#FFF", "italic": true}), want: []string{"bold", "italic", "size"}},
		{name: "nested", a: props(map[string]any{"font": map[string]any{"b": 1.0}}),
			b: props(map[string]any{"font": map[string]any{"b": 2.0}}), want: []string{"font"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StyleKeys(tt.a, tt.b))
		})
	}
}

func TestSliceDiceSpit_Text(t *testing.T) {
	var buf bytes.Buffer
	run(t, []string{"--titles"}, func(cmd *cli.Command) error {
		return SliceDiceSpit(nil, diffRows(t), diffAttrs(), cmd, &buf, nil)
	})

	out := buf.String()
	for _, want := range []string{"sheet", "cell", "Fresh", "Gone", "B12", "=SUM(A1:A3)", "2.5"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "row")
}

func TestSliceDiceSpit_FilterSortJSON(t *testing.T) {
	var buf bytes.Buffer
	run(t, []string{"--output", "json", "--filter", "sheet=Data", "--sort", "-row"}, func(cmd *cli.Command) error {
		return SliceDiceSpit(nil, diffRows(t), diffAttrs(), cmd, &buf, nil)
	})

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "B12", got[0]["cell"])
	assert.Equal(t, "B2", got[1]["cell"])
	assert.Equal(t, "A1", got[2]["cell"])
}

func TestSliceDiceSpit_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	run(t, []string{"--output", "json", "--filter", "type=renamed"}, func(cmd *cli.Command) error {
		return SliceDiceSpit(nil, diffRows(t), diffAttrs(), cmd, &buf, nil)
	})
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	var buf bytes.Buffer
	run(t, []string{"--output", "yaml", "--filter", "type=added,scope=cell"}, func(cmd *cli.Command) error {
		return SliceDiceSpit(nil, diffRows(t), diffAttrs(), cmd, &buf, nil)
	})

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "B12", got[0]["cell"])
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	var buf bytes.Buffer
	run(t, []string{"--output", "raw"}, func(cmd *cli.Command) error {
		return SliceDiceSpit([]byte(`{"raw":true}`), diffRows(t), diffAttrs(), cmd, &buf, nil)
	})
	assert.Equal(t, `{"raw":true}`, buf.String())
}

func TestSliceDiceSpit_TransformAndPostProcess(t *testing.T) {
	list := diffAttrs()
	list[2].TransformSpec = "u"

	var buf bytes.Buffer
	var seen int
	run(t, nil, func(cmd *cli.Command) error {
		return SliceDiceSpit(nil, diffRows(t), list, cmd, &buf, func(rows []map[string]interface{}) error {
			seen = len(rows)
			return nil
		})
	})
	assert.Equal(t, 5, seen)
	assert.Contains(t, buf.String(), "MODIFIED")
}

func TestTableWriter_HeaderFooter(t *testing.T) {
	var buf bytes.Buffer
	run(t, nil, func(cmd *cli.Command) error {
		cmd.Metadata = map[string]any{"header": "top line", "footer": "bottom line"}
		TableWriter(nil, attrs.Defaults("kind"), cmd, &buf)
		return nil
	})

	out := buf.String()
	assert.Contains(t, out, "top line")
	assert.Contains(t, out, "bottom line")
}

func TestStats(t *testing.T) {
	older, newer := books()
	stats := summary.CalculateDiffStats(older, newer)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		run(t, []string{"--titles"}, func(cmd *cli.Command) error {
			return Stats(stats, cmd, &buf)
		})
		out := buf.String()
		assert.Contains(t, out, stats.Summary)
		assert.Contains(t, out, "cells")
		assert.Contains(t, out, "sheets")
		assert.Contains(t, out, "total: 25")
	})

	t.Run("brief", func(t *testing.T) {
		var buf bytes.Buffer
		run(t, []string{"--brief"}, func(cmd *cli.Command) error {
			return Stats(stats, cmd, &buf)
		})
		assert.Equal(t, stats.Summary+"\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		run(t, []string{"--output", "json"}, func(cmd *cli.Command) error {
			return Stats(stats, cmd, &buf)
		})
		var got summary.DiffStats
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, stats, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		run(t, []string{"--output", "yaml"}, func(cmd *cli.Command) error {
			return Stats(stats, cmd, &buf)
		})
		assert.Contains(t, buf.String(), "cells-added: 11")
	})
}

func TestStatsRows(t *testing.T) {
	rows := StatsRows(summary.DiffStats{CellsAdded: 1, CellsModified: 2, SheetsDeleted: 3})
	assert.Equal(t, []StatsRow{
		{Kind: "cells", Added: 1, Modified: 2},
		{Kind: "sheets", Deleted: 3},
	}, rows)
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"cell": "C3", "row": 2.0, "type": "modified"},
		{"cell": "a1", "row": 0.0, "type": "added"},
		{"cell": "B2", "row": 1.0, "type": "Deleted"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "ascending_text", spec: "cell", wantOrder: []string{"a1", "B2", "C3"}},
		{name: "descending_text", spec: "-cell", wantOrder: []string{"C3", "B2", "a1"}},
		{name: "case_sensitive", spec: "!type", wantOrder: []string{"B2", "a1", "C3"}},
		{name: "case_insensitive", spec: "type", wantOrder: []string{"a1", "B2", "C3"}},
		{name: "numeric", spec: "row", wantOrder: []string{"a1", "B2", "C3"}},
		{name: "numeric_descending", spec: "-row", wantOrder: []string{"C3", "B2", "a1"}},
		{name: "multiple", spec: "type, row", wantOrder: []string{"a1", "B2", "C3"}},
		{name: "empty_spec", spec: "", wantOrder: []string{"C3", "a1", "B2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, want := range tt.wantOrder {
				assert.Equal(t, want, data[i]["cell"], "at index %d", i)
			}
		})
	}
}

func TestSortDataset_CellOrder(t *testing.T) {
	data := []map[string]interface{}{
		{"cell": "A10"},
		{"cell": "B2"},
		{"cell": "A2"},
		{"cell": "AA1"},
	}

	SortDataset(data, "cell")
	got := make([]string, 0, len(data))
	for _, row := range data {
		got = append(got, row["cell"].(string))
	}
	assert.Equal(t, []string{"AA1", "A2", "B2", "A10"}, got)

	SortDataset(data, "-cell")
	assert.Equal(t, "A10", data[0]["cell"])
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "nil_custom", value: nil, empty: []string{"-"}, want: "-"},
		{name: "empty_string_custom", value: "", empty: []string{"-"}, want: "-"},
		{name: "string", value: "x", want: "x"},
		{name: "zero_int", value: 0, empty: []string{"-"}, want: "0"},
		{name: "int64", value: int64(7), want: "7"},
		{name: "float", value: 2.5, want: "2.5"},
		{name: "whole_float", value: 3.0, want: "3"},
		{name: "false", value: false, empty: []string{"-"}, want: "false"},
		{name: "slice", value: []string{"fill", "font"}, want: `["fill","font"]`},
		{name: "map", value: map[string]interface{}{"a": 1}, want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestDumpSchema(t *testing.T) {
	var buf bytes.Buffer
	DumpSchema(reflect.TypeOf(DiffRow{}), &buf)

	out := buf.String()
	for _, want := range []string{"sheet\n", "cell\n", "old\n", "old.text\n", "new.formula\n", "styleKeys\n"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "old.style.")

	buf.Reset()
	DumpSchema(reflect.TypeOf([]*snapshot.Version{}), &buf)
	assert.Contains(t, buf.String(), "created-at\n")
}
