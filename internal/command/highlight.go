// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"github.com/xuri/excelize/v2"

	"github.com/tfctl/wbctl/internal/config"
	"github.com/tfctl/wbctl/internal/differ"
	"github.com/tfctl/wbctl/internal/excel"
	"github.com/tfctl/wbctl/internal/highlight"
	"github.com/tfctl/wbctl/internal/meta"
)

// highlightCommandAction is the action handler for the "highlight"
// subcommand. It diffs two versions from the store and writes a copy of the
// workbook with every changed cell painted.
func highlightCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	args := cmd.Args().Slice()
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return errors.New("highlight requires a workbook file")
	}
	path := args[0]

	older, newer, ok, err := LoadPair(ctx, cmd, args[1:])
	if err != nil || !ok {
		return err
	}
	diff := differ.DiffWorkbooks(older, newer)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	session := highlight.Apply(excel.NewEditor(f), diff,
		highlight.WithAddedColor(cmd.String("added")),
		highlight.WithModifiedColor(cmd.String("modified")),
		highlight.WithDeletedColor(cmd.String("deleted")),
		highlight.WithFadeAfter(0),
	)
	painted := session.Cells()

	if cmd.Bool("revert") {
		session.Cleanup()
	}

	out := cmd.String("out")
	if out == "" {
		out = highlightedPath(path)
	}
	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("failed to save %s: %w", out, err)
	}

	fmt.Fprintf(writer(cmd), "%d cells %s in %s\n", painted, session.State(), out)
	return nil
}

// highlightedPath returns <dir>/<base>.highlighted<ext> for path.
func highlightedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".highlighted" + ext
}

// newHighlightColorFlag returns a change color flag, sourced from
// highlight.<name> in the config file.
func newHighlightColorFlag(name, value string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    name,
		Usage:   fmt.Sprintf("background color of %s cells", name),
		Value:   value,
		Sources: cli.NewValueSourceChain(),
		Validator: func(value string) error {
			return FlagValidators(value, ColorValidator)
		},
	}
	if path, err := config.File(); err == nil {
		flag = NameSpacedValueChainFlagFromConfigFile("highlight", path, flag)
	}
	return flag
}

// highlightCommandBuilder constructs the cli.Command for "highlight".
func highlightCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "highlight",
		Usage:     "paint the changed cells of a workbook",
		UsageText: "wbctl highlight <workbook.xlsx> [older] [newer] [options]",
		Flags: []cli.Flag{
			newHighlightColorFlag("added", highlight.DefaultAddedColor),
			newHighlightColorFlag("modified", highlight.DefaultModifiedColor),
			newHighlightColorFlag("deleted", highlight.DefaultDeletedColor),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"O"},
				Usage:   "output workbook (default <workbook>.highlighted.xlsx)",
			},
			&cli.BoolFlag{
				Name:  "revert",
				Usage: "restore the original styles before saving",
			},
		},
		Action: highlightCommandAction,
		Meta:   meta,
	}).Build()
}
