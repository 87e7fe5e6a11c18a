// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/wbctl/internal/backend/local"
	"github.com/tfctl/wbctl/internal/excel"
	"github.com/tfctl/wbctl/internal/loader"
	"github.com/tfctl/wbctl/internal/meta"
)

// importCommandAction is the action handler for the "import" subcommand. It
// converts an xlsx workbook into a snapshot and stores it as the current
// version of a local store, rotating the previous current version into the
// history.
func importCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("import requires a workbook file")
	}

	snap, err := excel.Import(args[0])
	if err != nil {
		return err
	}

	out := cmd.String("out")
	if out == "" {
		out = snap.Name + local.Suffix
	}

	slot, prevSerial, err := nextSlot(out)
	if err != nil {
		return err
	}
	snap.Serial = max(prevSerial, int64(slot)) + 1

	// The document is fully prepared before the store is touched, so a failed
	// prompt or encryption leaves the current version in place.
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if cmd.Bool("encrypt") {
		passphrase, err := loader.Passphrase(cmd)()
		if err != nil {
			return fmt.Errorf("failed to get passphrase: %w", err)
		}
		kp, err := loader.DefaultKeyProvider()
		if err != nil {
			return err
		}
		if doc, err = loader.Encrypt(doc, passphrase, kp); err != nil {
			return fmt.Errorf("failed to encrypt snapshot: %w", err)
		}
	}

	if err := install(out, doc, slot); err != nil {
		return err
	}

	fmt.Fprintf(writer(cmd), "%s serial %d\n", out, snap.Serial)
	return nil
}

// nextSlot returns the history slot, path.<n>, the current snapshot at path
// moves to on the next import, along with that snapshot's serial. slot is
// zero when there is no current snapshot.
func nextSlot(path string) (slot int, serial int64, err error) {
	prev, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	history, _ := filepath.Glob(path + ".*")
	for _, h := range history {
		if i, err := strconv.Atoi(strings.TrimPrefix(h, path+".")); err == nil && i > slot {
			slot = i
		}
	}

	return slot + 1, gjson.GetBytes(prev, "serial").Int(), nil
}

// install writes doc next to path, moves the current snapshot into history
// slot (when slot is not zero) and renames the new document into place.
func install(path string, doc []byte, slot int) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	var rotated string
	if slot > 0 {
		rotated = path + "." + strconv.Itoa(slot)
		if err := os.Rename(path, rotated); err != nil {
			return fmt.Errorf("failed to rotate %s: %w", path, err)
		}
		log.Debugf("rotated %s to %s", path, rotated)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		if rotated != "" {
			if rerr := os.Rename(rotated, path); rerr != nil {
				log.WithError(rerr).Warnf("failed to restore %s", path)
			}
		}
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// importCommandBuilder constructs the cli.Command for "import".
func importCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "store an xlsx workbook as a new snapshot version",
		UsageText: "wbctl import <workbook.xlsx> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "encrypt",
				Aliases: []string{"e"},
				Usage:   "write an encrypted snapshot",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"O"},
				Usage:   "snapshot file (default <book>.snapshot.json)",
			},
			newPassphraseFlag(),
		},
		Action: importCommandAction,
	}
}
