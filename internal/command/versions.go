// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/backend"
	"github.com/tfctl/wbctl/internal/meta"
	"github.com/tfctl/wbctl/internal/snapshot"
)

// versionsDefaultAttrs specifies the default attributes displayed for
// snapshot versions.
var versionsDefaultAttrs = []string{"id", "serial", "created-at:created:T", "!path"}

// versionsCommandAction is the action handler for the "versions" subcommand.
// It lists the versions held by the store, most recent first.
func versionsCommandAction(ctx context.Context, cmd *cli.Command) error {
	fn := func(ctx context.Context, cmd *cli.Command) ([]*snapshot.Version, error) {
		be, err := backend.NewBackend(ctx, cmd, cmd.String("store"))
		if err != nil {
			return nil, err
		}

		versions, err := be.Versions(ctx)
		if err != nil {
			return nil, err
		}
		if limit := cmd.Int("limit"); limit > 0 && len(versions) > limit {
			versions = versions[:limit]
		}
		return versions, nil
	}

	return NewListActionRunner(
		"versions",
		reflect.TypeOf((*snapshot.Version)(nil)).Elem(),
		versionsDefaultAttrs,
		fn,
	).Run(ctx, cmd)
}

// versionsCommandBuilder constructs the cli.Command for "versions", wiring
// metadata, flags, and action handlers.
func versionsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "versions",
		Usage:     "list the snapshot versions of a store",
		UsageText: "wbctl versions [options]",
		Listing:   true,
		Action:    versionsCommandAction,
		Meta:      meta,
	}).Build()
}
