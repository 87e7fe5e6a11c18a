// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"

	"github.com/xuri/excelize/v2"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/wbctl/internal/differ"
	"github.com/tfctl/wbctl/internal/log"
	"github.com/tfctl/wbctl/internal/snapshot"
)

const (
	ScopeCell  = "cell"
	ScopeSheet = "sheet"
)

// CellSide is one side of a cell change. Text is the formula when there is
// one and the value otherwise.
type CellSide struct {
	Value   interface{}     `json:"value" yaml:"value"`
	Formula string          `json:"formula,omitempty" yaml:"formula,omitempty"`
	Style   *snapshot.Style `json:"style,omitempty" yaml:"style,omitempty"`
	Text    string          `json:"text" yaml:"text"`
}

// DiffRow is one line of a diff listing: a changed cell, or an added or
// deleted sheet. Row and Col are zero based; Cell is the A1 reference.
type DiffRow struct {
	SheetID   string    `json:"sheetId" yaml:"sheetId"`
	Sheet     string    `json:"sheet" yaml:"sheet"`
	Scope     string    `json:"scope" yaml:"scope"`
	Type      string    `json:"type" yaml:"type"`
	Cell      string    `json:"cell,omitempty" yaml:"cell,omitempty"`
	Row       *int      `json:"row,omitempty" yaml:"row,omitempty"`
	Col       *int      `json:"col,omitempty" yaml:"col,omitempty"`
	Old       *CellSide `json:"old,omitempty" yaml:"old,omitempty"`
	New       *CellSide `json:"new,omitempty" yaml:"new,omitempty"`
	StyleKeys []string  `json:"styleKeys,omitempty" yaml:"styleKeys,omitempty"`
}

// DiffRows flattens diff into listing rows: added sheets, deleted sheets and
// then the cell changes of each modified sheet in diff order. older and newer
// provide sheet names and may be nil.
func DiffRows(diff *differ.WorkbookDiff, older, newer *snapshot.Snapshot) []DiffRow {
	rows := []DiffRow{}
	if diff == nil {
		return rows
	}

	for _, id := range diff.AddedSheets {
		rows = append(rows, DiffRow{SheetID: id, Sheet: sheetName(newer, id), Scope: ScopeSheet, Type: string(differ.Added)})
	}
	for _, id := range diff.DeletedSheets {
		rows = append(rows, DiffRow{SheetID: id, Sheet: sheetName(older, id), Scope: ScopeSheet, Type: string(differ.Deleted)})
	}

	for _, sc := range diff.ModifiedSheets {
		for _, c := range sc.CellChanges {
			row, col := c.Row, c.Col
			dr := DiffRow{
				SheetID: sc.SheetID,
				Sheet:   sc.SheetName,
				Scope:   ScopeCell,
				Type:    string(c.Type),
				Row:     &row,
				Col:     &col,
			}

			if ref, err := excelize.CoordinatesToCellName(col+1, row+1); err == nil {
				dr.Cell = ref
			} else {
				log.Debugf("cell name: row=%d col=%d err=%v", row, col, err)
			}

			if c.Type != differ.Added {
				dr.Old = side(c.OldValue, c.OldFormula, c.OldStyle)
			}
			if c.Type != differ.Deleted {
				dr.New = side(c.NewValue, c.NewFormula, c.NewStyle)
			}
			dr.StyleKeys = StyleKeys(c.OldStyle, c.NewStyle)

			rows = append(rows, dr)
		}
	}

	return rows
}

// StyleKeys names the style properties that differ between a and b, sorted.
// Reference styles and a style appearing or disappearing report "*".
func StyleKeys(a, b *snapshot.Style) []string {
	if differ.StylesEqual(a, b) {
		return nil
	}
	if a == nil || b == nil || a.IsRef() || b.IsRef() {
		return []string{"*"}
	}

	delta, err := formatter.NewDeltaFormatter().FormatAsJson(gojsondiff.New().CompareObjects(a.Props, b.Props))
	if err != nil {
		log.Debugf("style delta: %v", err)
		return []string{"*"}
	}

	keys := make([]string, 0, len(delta))
	for k := range delta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func side(v *snapshot.Value, f *string, s *snapshot.Style) *CellSide {
	cs := &CellSide{Style: s}
	if v != nil {
		cs.Value = v.Interface()
		cs.Text = v.Text()
	}
	if f != nil && *f != "" {
		cs.Formula = *f
		cs.Text = *f
	}
	return cs
}

func sheetName(s *snapshot.Snapshot, id string) string {
	if s == nil {
		return id
	}
	if sh := s.Sheet(id); sh != nil && sh.Name != "" {
		return sh.Name
	}
	return id
}
