// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/config"
	"github.com/tfctl/wbctl/internal/differ"
	"github.com/tfctl/wbctl/internal/meta"
	"github.com/tfctl/wbctl/internal/output"
	"github.com/tfctl/wbctl/internal/summary"
)

// newLocaleFlag returns --locale, sourced from <ns>.locale or locale in the
// config file.
func newLocaleFlag(ns string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "locale",
		Usage:   "language of the change summary (en, zh-Hans)",
		Sources: cli.NewValueSourceChain(),
	}
	if path, err := config.File(); err == nil {
		flag = NameSpacedValueChainFlagFromConfigFile(ns, path, flag)
	}
	return flag
}

// summaryOptions collects the summary options from --locale and the
// summary.sheet_estimate config value.
func summaryOptions(cmd *cli.Command) []summary.Option {
	opts := []summary.Option{summary.WithLanguage(summary.ParseLanguage(cmd.String("locale")))}
	if n, err := config.GetInt("summary.sheet_estimate"); err == nil {
		opts = append(opts, summary.WithSheetEstimate(n))
	}
	return opts
}

// statsCommandAction is the action handler for the "stats" subcommand. It
// emits the aggregate counts of the diff between two versions.
func statsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(output.StatsRow{})) {
		return nil
	}

	older, newer, ok, err := LoadPair(ctx, cmd, cmd.Args().Slice())
	if err != nil || !ok {
		return err
	}

	stats := summary.StatsFromDiff(differ.DiffWorkbooks(older, newer), summaryOptions(cmd)...)
	log.Debugf("stats: %+v", stats)

	return output.Stats(stats, cmd, writer(cmd))
}

// statsCommandBuilder constructs the cli.Command for "stats", wiring
// metadata, flags, and action handlers.
func statsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "stats",
		Usage:     "summarize the changes between two snapshot versions",
		UsageText: "wbctl stats [older] [newer] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "brief",
				Aliases: []string{"b"},
				Usage:   "print the summary line only",
			},
			newLocaleFlag("stats"),
		},
		Listing: true,
		Action:  statsCommandAction,
		Meta:    meta,
	}).Build()
}
