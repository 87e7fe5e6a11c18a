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

	"github.com/tfctl/wbctl/internal/output"
)

// ListActionRunner[T] encapsulates the common listing action pattern. It
// handles GetMeta, schema dumping, BuildAttrs and output emission, with the
// data fetching provided by FetchFn.
type ListActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
}

// Run executes the listing action with the provided context and command.
func (lar *ListActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	// Step 1: GetMeta + debug.
	m := GetMeta(cmd)
	log.Debugf("Executing %s action for %v", lar.CommandName, m.Args)

	// Step 2: Short-circuit checks.
	if DumpSchemaIfRequested(cmd, lar.SchemaType) {
		return nil
	}

	// Step 3: BuildAttrs + debug.
	attrs, err := BuildAttrs(cmd, lar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", attrs)

	// Step 4: Fetch data.
	results, err := lar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}
	if results == nil {
		results = []T{}
	}

	// Step 5: Emit + return.
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal %s results: %w", lar.CommandName, err)
	}
	return output.SliceDiceSpit(append(raw, '\n'), results, attrs, cmd, writer(cmd), nil)
}

// NewListActionRunner creates a ListActionRunner with the provided
// configuration.
func NewListActionRunner[T any](
	commandName string,
	schemaType reflect.Type,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command) ([]T, error),
) *ListActionRunner[T] {
	return &ListActionRunner[T]{
		CommandName:  commandName,
		SchemaType:   schemaType,
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
