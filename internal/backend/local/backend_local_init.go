// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

type BackendLocalOption = func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error

// NewBackendLocal returns a BackendLocal rooted at the working directory,
// adjusted by options.
func NewBackendLocal(ctx context.Context, cmd *cli.Command, options ...BackendLocalOption) (*BackendLocal, error) {
	options = append([]BackendLocalOption{WithDefaults()}, options...)

	be := &BackendLocal{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	return be, nil
}

func WithDefaults() BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		cwd, _ := os.Getwd()
		be.Dir = cwd
		be.Pattern = "*" + Suffix + "*"
		return nil
	}
}

// FromPath points the backend at a snapshot file, whose history files are
// its siblings, or at a directory holding a single book's snapshots.
func FromPath(path string) BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		if path == "" {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("snapshot store not found: %w", err)
		}

		if info.IsDir() {
			be.Dir = abs
		} else {
			be.Dir = filepath.Dir(abs)
			be.Pattern = filepath.Base(abs) + "*"
		}

		log.Debugf("NewBackendLocal FromPath(): dir=%s pattern=%s", be.Dir, be.Pattern)
		return nil
	}
}

// WithBook narrows a directory store to the snapshots of one book.
func WithBook(book string) BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		if book == "" {
			return nil
		}
		be.Pattern = book + Suffix + "*"
		log.Debugf("NewBackendLocal WithBook(): pattern=%s", be.Pattern)
		return nil
	}
}
