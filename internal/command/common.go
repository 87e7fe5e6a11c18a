// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"github.com/xuri/excelize/v2"

	"github.com/tfctl/wbctl/internal/attrs"
	"github.com/tfctl/wbctl/internal/backend"
	"github.com/tfctl/wbctl/internal/differ"
	"github.com/tfctl/wbctl/internal/excel"
	"github.com/tfctl/wbctl/internal/loader"
	"github.com/tfctl/wbctl/internal/meta"
	"github.com/tfctl/wbctl/internal/output"
	"github.com/tfctl/wbctl/internal/snapshot"
)

// zipMagic opens every xlsx file.
var zipMagic = []byte("PK\x03\x04")

// picker chooses versions for the "+" argument. Tests replace it.
var picker differ.Picker = differ.SelectVersions

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, err
		}
	}
	err = al.SetGlobalTransformSpec()
	return
}

// DumpSchemaIfRequested writes the row attributes of t when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(t, writer(cmd))
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer returns the root command's writer so tests can capture output.
func writer(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if w := cmd.Root().Writer; w != nil {
			return w
		}
	}
	return os.Stdout
}

// LoadSnapshot turns a stored document into a snapshot. The document may be
// plain snapshot JSON, an encrypted envelope or an xlsx workbook.
func LoadSnapshot(name string, doc []byte, passphrase loader.PassphraseFunc) (*snapshot.Snapshot, error) {
	if bytes.HasPrefix(doc, zipMagic) {
		f, err := excelize.OpenReader(bytes.NewReader(doc))
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", name, err)
		}
		defer f.Close()
		return excel.FromFile(f, name)
	}

	snap, err := loader.Load(doc, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return snap, nil
}

// LoadPair resolves the two versions selected by args in the --store store
// and loads them, older first. ok is false when the user cancelled the
// picker.
func LoadPair(ctx context.Context, cmd *cli.Command, args []string) (older, newer *snapshot.Snapshot, ok bool, err error) {
	be, err := backend.NewBackend(ctx, cmd, cmd.String("store"))
	if err != nil {
		return nil, nil, false, err
	}
	log.Debugf("backend: %s", be)

	docs, err := backend.DiffSnapshots(ctx, be, args, picker)
	if err != nil {
		return nil, nil, false, err
	}
	if docs == nil {
		return nil, nil, false, nil
	}

	passphrase := loader.Passphrase(cmd)
	if older, err = LoadSnapshot("older", docs[0], passphrase); err != nil {
		return nil, nil, false, err
	}
	if newer, err = LoadSnapshot("newer", docs[1], passphrase); err != nil {
		return nil, nil, false, err
	}
	return older, newer, true, nil
}
