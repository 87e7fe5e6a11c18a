// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/meta"
	"github.com/tfctl/wbctl/internal/summary"
)

// checkCommandAction is the action handler for the "check" subcommand. It
// exits 1 when the two versions differ and 0 when they do not, printing the
// summary line unless --quiet is set.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	older, newer, ok, err := LoadPair(ctx, cmd, cmd.Args().Slice())
	if err != nil || !ok {
		return err
	}

	changed := summary.HasRealChanges(older, newer)
	if !cmd.Bool("quiet") {
		stats := summary.CalculateDiffStats(older, newer, summaryOptions(cmd)...)
		fmt.Fprintln(writer(cmd), stats.Summary)
	}

	if changed {
		return cli.Exit("", 1)
	}
	return nil
}

// checkCommandBuilder constructs the cli.Command for "check".
func checkCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "check",
		Usage:     "exit 1 if two snapshot versions differ",
		UsageText: "wbctl check [older] [newer] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "do not print the summary",
			},
			newLocaleFlag("check"),
		},
		Action: checkCommandAction,
		Meta:   meta,
	}).Build()
}
