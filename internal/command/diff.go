// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/differ"
	"github.com/tfctl/wbctl/internal/meta"
	"github.com/tfctl/wbctl/internal/output"
	"github.com/tfctl/wbctl/internal/summary"
)

// diffDefaultAttrs specifies the default attributes displayed for diff rows.
var diffDefaultAttrs = []string{"sheet", "cell", "type", "old.text:old", "new.text:new"}

// diffCommandAction is the action handler for the "diff" subcommand. It loads
// the two selected versions, diffs them and emits one row per change with the
// change summary as the footer.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(output.DiffRow{})) {
		return nil
	}

	attrs, err := BuildAttrs(cmd, diffDefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", attrs)

	older, newer, ok, err := LoadPair(ctx, cmd, cmd.Args().Slice())
	if err != nil || !ok {
		return err
	}

	diff := differ.DiffWorkbooks(older, newer)
	stats := summary.StatsFromDiff(diff, summaryOptions(cmd)...)
	cmd.Metadata["footer"] = stats.Summary

	raw, err := json.Marshal(diff)
	if err != nil {
		return fmt.Errorf("failed to marshal diff: %w", err)
	}

	return output.SliceDiceSpit(append(raw, '\n'), output.DiffRows(&diff, older, newer), attrs, cmd, writer(cmd), nil)
}

// diffCommandBuilder constructs the cli.Command for "diff", wiring metadata,
// flags, and action handlers.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "list the cell changes between two snapshot versions",
		UsageText: "wbctl diff [older] [newer] [options]\n\nversions are SV~N, a relative index (0, -1), a serial, an id prefix, a file or + to pick",
		Flags:     []cli.Flag{newLocaleFlag("diff")},
		Listing:   true,
		Action:    diffCommandAction,
		Meta:      meta,
	}).Build()
}
