// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/backend/local"
	"github.com/tfctl/wbctl/internal/backend/s3"
	"github.com/tfctl/wbctl/internal/differ"
	"github.com/tfctl/wbctl/internal/snapshot"
	"github.com/tfctl/wbctl/internal/svutil"
	"github.com/tfctl/wbctl/internal/util"
)

// Backend is a store holding the version history of one workbook.
type Backend interface {
	// Versions lists the stored versions, most recent first.
	Versions(ctx context.Context) ([]*snapshot.Version, error)
	// Snapshot returns the raw document of v.
	Snapshot(ctx context.Context, v *snapshot.Version) ([]byte, error)
	String() string
}

// NewBackend returns the Backend for store: an s3://bucket/key URL selects
// the S3 store, anything else is a local path,
// optionally suffixed with ::book to pick one book out of a directory.
func NewBackend(ctx context.Context, cmd *cli.Command, store string) (Backend, error) {
	log.Debugf("NewBackend: store=%s", store)

	if strings.HasPrefix(store, "s3://") {
		return s3.NewBackendS3(ctx, cmd, s3.FromURL(store), s3.FromCommand())
	}
	if store == "" {
		return local.NewBackendLocal(ctx, cmd)
	}

	path, book, err := util.ParseStore(store)
	if err != nil {
		return nil, fmt.Errorf("invalid store %q: %w", store, err)
	}
	return local.NewBackendLocal(ctx, cmd, local.FromPath(path), local.WithBook(book))
}

// Snapshots resolves specs against be's versions and returns their
// documents in spec order. Versions resolved to a file path are read from
// disk without touching the store.
func Snapshots(ctx context.Context, be Backend, specs ...string) ([][]byte, error) {
	candidates, err := be.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	versions, err := svutil.Resolve(candidates, specs...)
	if err != nil {
		return nil, err
	}

	results := make([][]byte, 0, len(versions))
	for _, v := range versions {
		body, err := read(ctx, be, v)
		if err != nil {
			return nil, err
		}
		results = append(results, body)
	}
	return results, nil
}

// DiffSnapshots returns the older and newer documents selected by the diff
// command's positional args. A nil result with a nil error means the user
// cancelled the picker.
func DiffSnapshots(ctx context.Context, be Backend, args []string, pick differ.Picker) ([][]byte, error) {
	specs, err := differ.DiffSpecs(args, func() ([]*snapshot.Version, error) {
		return be.Versions(ctx)
	}, pick)
	if err != nil || specs == nil {
		return nil, err
	}
	log.Debugf("diff specs: %v", specs)

	return Snapshots(ctx, be, specs...)
}

func read(ctx context.Context, be Backend, v *snapshot.Version) ([]byte, error) {
	if v.Path != "" {
		body, err := os.ReadFile(v.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot file: %w", err)
		}
		return body, nil
	}

	body, err := be.Snapshot(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("failed to read version %s: %w", v.ID, err)
	}
	return body, nil
}
