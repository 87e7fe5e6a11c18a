// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/wbctl/internal/attrs"
	"github.com/tfctl/wbctl/internal/summary"
)

// StatsRow is one line of the text rendering of DiffStats.
type StatsRow struct {
	Kind     string `json:"kind" yaml:"kind"`
	Added    int    `json:"added" yaml:"added"`
	Modified int    `json:"modified" yaml:"modified"`
	Deleted  int    `json:"deleted" yaml:"deleted"`
}

// StatsRows splits stats into a cells row and a sheets row.
func StatsRows(stats summary.DiffStats) []StatsRow {
	return []StatsRow{
		{Kind: "cells", Added: stats.CellsAdded, Modified: stats.CellsModified, Deleted: stats.CellsDeleted},
		{Kind: "sheets", Added: stats.SheetsAdded, Modified: stats.SheetsModified, Deleted: stats.SheetsDeleted},
	}
}

// Stats renders stats per --output. Text output is the summary line followed
// by a cells/sheets table unless --brief is set.
func Stats(stats summary.DiffStats, cmd *cli.Command, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	switch cmd.String("output") {
	case "json", "raw":
		doc, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(doc))
		return err
	case "yaml":
		doc, err := yaml.Marshal(stats)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(doc)
		return err
	}

	if cmd.Bool("brief") {
		_, err := fmt.Fprintln(w, stats.Summary)
		return err
	}

	if cmd.Metadata == nil {
		cmd.Metadata = map[string]any{}
	}
	cmd.Metadata["header"] = stats.Summary
	cmd.Metadata["footer"] = fmt.Sprintf("total: %d", stats.TotalChanges)

	resultSet := make([]map[string]interface{}, 0, 2)
	for _, r := range StatsRows(stats) {
		resultSet = append(resultSet, map[string]interface{}{
			"kind": r.Kind, "added": r.Added, "modified": r.Modified, "deleted": r.Deleted,
		})
	}

	TableWriter(resultSet, attrs.Defaults("kind", "added", "modified", "deleted"), cmd, w)
	return nil
}
