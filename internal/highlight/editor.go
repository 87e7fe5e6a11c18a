// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"errors"
	"maps"
)

// ErrNoActiveWorkbook is returned by an Editor that has nothing open.
var ErrNoActiveWorkbook = errors.New("no active workbook")

// Editor is the live spreadsheet surface.
type Editor interface {
	ActiveWorkbook() (Workbook, error)
}

// Workbook resolves sheets by their stable id.
type Workbook interface {
	SheetBySheetID(id string) (Sheet, bool)
}

// Sheet hands out ranges. Rows and columns are zero based.
type Sheet interface {
	Range(row, col, numRows, numCols int) (Range, error)
}

// Range reads and writes the style of a block of cells.
type Range interface {
	Style() (*CellStyle, error)
	SetStyle(*CellStyle) error
}

// CellStyle is the part of a cell style the controller cares about. Props
// carries whatever else the editor stores and is passed back untouched.
type CellStyle struct {
	Background string
	Props      map[string]any
}

// Clone returns a copy safe to mutate. Cloning nil yields an empty style.
func (s *CellStyle) Clone() *CellStyle {
	if s == nil {
		return &CellStyle{}
	}
	return &CellStyle{
		Background: s.Background,
		Props:      maps.Clone(s.Props),
	}
}
