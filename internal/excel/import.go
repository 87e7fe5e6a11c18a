// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package excel

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tfctl/wbctl/internal/log"
	"github.com/tfctl/wbctl/internal/snapshot"
)

const sheetIDPrefix = "sheet-"

// SheetID returns the snapshot id of the workbook sheet with the given
// sheetId. The workbook keeps a sheetId for the life of the sheet, so the id
// survives inserting, moving and deleting other sheets.
func SheetID(sheetID int) string {
	return sheetIDPrefix + strconv.Itoa(sheetID)
}

// sheetIDs maps sheet names to their snapshot ids.
func sheetIDs(f *excelize.File) map[string]string {
	ids := make(map[string]string)
	for n, name := range f.GetSheetMap() {
		ids[name] = SheetID(n)
	}
	return ids
}

// Import reads the workbook at path into a snapshot named after the file.
func Import(path string) (*snapshot.Snapshot, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)
	return FromFile(f, strings.TrimSuffix(name, filepath.Ext(name)))
}

// FromFile converts an open workbook. Values are typed from the stored cell
// type, formulas are prefixed with "=", and non default cell styles become
// "xf:<id>" references.
func FromFile(f *excelize.File, name string) (*snapshot.Snapshot, error) {
	snap := snapshot.New(name, name)
	ids := sheetIDs(f)

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
		}

		cols := 0
		for _, row := range rows {
			cols = max(cols, len(row))
		}

		id, ok := ids[sheetName]
		if !ok {
			return nil, fmt.Errorf("no sheetId for sheet %s", sheetName)
		}

		sh := snapshot.NewSheet(id, sheetName, len(rows), cols)
		for r, row := range rows {
			for c, raw := range row {
				if raw == "" {
					continue
				}
				cell, err := readCell(f, sheetName, r, c, raw)
				if err != nil {
					log.WithError(err).Warnf("import: %s row %d col %d skipped", sheetName, r, c)
					continue
				}
				sh.Set(r, c, cell)
			}
		}

		snap.AddSheet(sh)
		log.Debugf("import: sheet %s as %s (%dx%d)", sheetName, sh.ID, sh.RowCount, sh.ColumnCount)
	}

	return snap, nil
}

func readCell(f *excelize.File, sheet string, row, col int, raw string) (*snapshot.Cell, error) {
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return nil, err
	}

	typ, err := f.GetCellType(sheet, ref)
	if err != nil {
		return nil, err
	}

	cell := &snapshot.Cell{V: typedValue(typ, raw)}

	formula, err := f.GetCellFormula(sheet, ref)
	if err != nil {
		return nil, err
	}
	if formula != "" {
		cell.F = "=" + formula
	}

	styleID, err := f.GetCellStyle(sheet, ref)
	if err != nil {
		return nil, err
	}
	if styleID > 0 {
		cell.S = snapshot.StyleRef("xf:" + strconv.Itoa(styleID))
	}

	return cell, nil
}

func typedValue(typ excelize.CellType, raw string) snapshot.Value {
	switch typ {
	case excelize.CellTypeBool:
		return snapshot.Bool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return snapshot.String(raw)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return snapshot.Number(n)
	}
	return snapshot.String(raw)
}
