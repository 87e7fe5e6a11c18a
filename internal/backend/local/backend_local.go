// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/snapshot"
)

// Suffix is the extension of a current snapshot file. History files append
// ".<n>" to it.
const Suffix = ".snapshot.json"

// BackendLocal is a directory of snapshot files: <book>.snapshot.json holds
// the current version and <book>.snapshot.json.<n> older ones.
type BackendLocal struct {
	Ctx     context.Context
	Cmd     *cli.Command
	Dir     string
	Pattern string
}

// Versions implements backend.Backend. It globs the history files, orders
// them by modification time, most recent first, and reads the serial out of
// each document. The file name is the version id.
func (be *BackendLocal) Versions(_ context.Context) ([]*snapshot.Version, error) {
	files, err := filepath.Glob(filepath.Join(be.Dir, be.Pattern))
	if err != nil {
		return nil, err
	}

	var versions []*snapshot.Version
	for _, p := range files {
		stat, err := os.Stat(p)
		if err != nil || stat.IsDir() {
			continue
		}

		body, err := os.ReadFile(p)
		if err != nil {
			log.WithError(err).Warnf("skipping unreadable snapshot %s", p)
			continue
		}

		versions = append(versions, &snapshot.Version{
			ID:        filepath.Base(p),
			Serial:    gjson.GetBytes(body, "serial").Int(),
			CreatedAt: stat.ModTime(),
			Path:      p,
		})
	}

	sort.SliceStable(versions, func(i, j int) bool {
		if versions[i].CreatedAt.Equal(versions[j].CreatedAt) {
			return versions[i].Serial > versions[j].Serial
		}
		return versions[i].CreatedAt.After(versions[j].CreatedAt)
	})

	log.Debugf("local versions: dir=%s pattern=%s count=%d", be.Dir, be.Pattern, len(versions))
	return versions, nil
}

// Snapshot implements backend.Backend.
func (be *BackendLocal) Snapshot(_ context.Context, v *snapshot.Version) ([]byte, error) {
	p := v.Path
	if p == "" {
		p = filepath.Join(be.Dir, v.ID)
	}
	body, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return body, nil
}

func (be *BackendLocal) String() string {
	return filepath.Join(be.Dir, be.Pattern)
}
