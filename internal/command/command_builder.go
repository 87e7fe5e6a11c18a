// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/meta"
)

// CommandBuilder constructs a cli.Command for the store backed subcommands
// (diff, stats, check, versions, highlight) using a consistent pattern. The
// builder wires metadata, adds the store flags and, for listing commands, the
// schema and global listing flags, and sets up validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Listing   bool
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	flags := append(cb.Flags, NewStoreFlags(cb.Name)...)
	if cb.Listing {
		flags = append(flags, append([]cli.Flag{newSchemaFlag()}, NewGlobalFlags(cb.Name)...)...)
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}
