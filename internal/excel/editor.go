// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tfctl/wbctl/internal/highlight"
)

// Props keys carried on highlight.CellStyle.
const (
	propStyleID = "xf"
	propStyle   = "style"
)

// Editor exposes an open workbook to the highlight package. Backgrounds are
// solid pattern fills.
type Editor struct {
	f *excelize.File
}

// NewEditor wraps f. A nil f yields an editor with no active workbook.
func NewEditor(f *excelize.File) *Editor {
	return &Editor{f: f}
}

func (e *Editor) ActiveWorkbook() (highlight.Workbook, error) {
	if e == nil || e.f == nil {
		return nil, highlight.ErrNoActiveWorkbook
	}
	return workbook{e.f}, nil
}

type workbook struct {
	f *excelize.File
}

// SheetBySheetID accepts "sheet-<sheetId>" ids and, failing that, a sheet
// name.
func (w workbook) SheetBySheetID(id string) (highlight.Sheet, bool) {
	if strings.HasPrefix(id, sheetIDPrefix) {
		if n, err := strconv.Atoi(strings.TrimPrefix(id, sheetIDPrefix)); err == nil {
			name, ok := w.f.GetSheetMap()[n]
			if !ok {
				return nil, false
			}
			return sheet{w.f, name}, true
		}
	}
	for _, name := range w.f.GetSheetList() {
		if name == id {
			return sheet{w.f, name}, true
		}
	}
	return nil, false
}

type sheet struct {
	f    *excelize.File
	name string
}

func (s sheet) Range(row, col, numRows, numCols int) (highlight.Range, error) {
	if row < 0 || col < 0 || numRows < 1 || numCols < 1 {
		return nil, fmt.Errorf("invalid range %d,%d %dx%d", row, col, numRows, numCols)
	}
	tl, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return nil, err
	}
	br, err := excelize.CoordinatesToCellName(col+numCols, row+numRows)
	if err != nil {
		return nil, err
	}
	return cellRange{f: s.f, sheet: s.name, tl: tl, br: br}, nil
}

type cellRange struct {
	f      *excelize.File
	sheet  string
	tl, br string
}

// Style reports the style of the top left cell of the range.
func (r cellRange) Style() (*highlight.CellStyle, error) {
	id, err := r.f.GetCellStyle(r.sheet, r.tl)
	if err != nil {
		return nil, err
	}
	st, err := r.f.GetStyle(id)
	if err != nil {
		return nil, err
	}
	return &highlight.CellStyle{
		Background: background(st.Fill),
		Props:      map[string]any{propStyleID: id, propStyle: st},
	}, nil
}

// SetStyle applies cs to every cell of the range. A style whose background
// still matches the captured xf is written back by id so the original entry is
// reused.
func (r cellRange) SetStyle(cs *highlight.CellStyle) error {
	if cs == nil {
		cs = &highlight.CellStyle{}
	}

	base := &excelize.Style{}
	if st, ok := cs.Props[propStyle].(*excelize.Style); ok && st != nil {
		if id, ok := cs.Props[propStyleID].(int); ok && background(st.Fill) == normalize(cs.Background) {
			return r.f.SetCellStyle(r.sheet, r.tl, r.br, id)
		}
		cp := *st
		base = &cp
	}

	base.Fill = excelize.Fill{}
	if c := normalize(cs.Background); c != "" {
		base.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{c}}
	}

	id, err := r.f.NewStyle(base)
	if err != nil {
		return err
	}
	return r.f.SetCellStyle(r.sheet, r.tl, r.br, id)
}

// background extracts a "#RRGGBB" color from a solid fill, or "".
func background(fill excelize.Fill) string {
	if fill.Type != "pattern" || fill.Pattern != 1 || len(fill.Color) == 0 {
		return ""
	}
	return normalize(fill.Color[0])
}

// normalize upper cases a color, drops an ARGB alpha byte and adds "#".
func normalize(c string) string {
	c = strings.ToUpper(strings.TrimPrefix(c, "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	if c == "" {
		return ""
	}
	return "#" + c
}
