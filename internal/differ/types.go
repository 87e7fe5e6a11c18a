// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import "github.com/tfctl/wbctl/internal/snapshot"

type ChangeType string

const (
	Added    ChangeType = "added"
	Modified ChangeType = "modified"
	Deleted  ChangeType = "deleted"
)

// CellChange is the delta for one (row, col) position of one sheet. Added
// changes carry only New* fields, deleted changes only Old* fields and
// modified changes carry both.
type CellChange struct {
	Row        int             `json:"row" yaml:"row"`
	Col        int             `json:"col" yaml:"col"`
	SheetID    string          `json:"sheetId" yaml:"sheetId"`
	Type       ChangeType      `json:"type" yaml:"type"`
	OldValue   *snapshot.Value `json:"oldValue,omitempty" yaml:"oldValue,omitempty"`
	NewValue   *snapshot.Value `json:"newValue,omitempty" yaml:"newValue,omitempty"`
	OldFormula *string         `json:"oldFormula,omitempty" yaml:"oldFormula,omitempty"`
	NewFormula *string         `json:"newFormula,omitempty" yaml:"newFormula,omitempty"`
	OldStyle   *snapshot.Style `json:"oldStyle,omitempty" yaml:"oldStyle,omitempty"`
	NewStyle   *snapshot.Style `json:"newStyle,omitempty" yaml:"newStyle,omitempty"`
}

// SheetChange aggregates the changes of a sheet present in both snapshots.
//
// Row and column deltas only detect trailing growth that carries data: a
// shifted, inserted or deleted row in the middle of a sheet shows up as cell
// changes instead, and DeletedRows/DeletedCols are never populated.
// Approximate is always true to make that explicit to consumers.
type SheetChange struct {
	SheetID     string       `json:"sheetId" yaml:"sheetId"`
	SheetName   string       `json:"sheetName" yaml:"sheetName"`
	Type        ChangeType   `json:"type" yaml:"type"`
	CellChanges []CellChange `json:"cellChanges" yaml:"cellChanges"`
	AddedRows   []int        `json:"addedRows,omitempty" yaml:"addedRows,omitempty"`
	DeletedRows []int        `json:"deletedRows,omitempty" yaml:"deletedRows,omitempty"`
	AddedCols   []int        `json:"addedCols,omitempty" yaml:"addedCols,omitempty"`
	DeletedCols []int        `json:"deletedCols,omitempty" yaml:"deletedCols,omitempty"`
	Approximate bool         `json:"approximate" yaml:"approximate"`
}

// HasChanges reports whether the sheet change carries anything worth
// reporting.
func (sc *SheetChange) HasChanges() bool {
	return len(sc.CellChanges) > 0 ||
		len(sc.AddedRows) > 0 || len(sc.DeletedRows) > 0 ||
		len(sc.AddedCols) > 0 || len(sc.DeletedCols) > 0
}

// Count returns the number of cell changes of the given type.
func (sc *SheetChange) Count(t ChangeType) int {
	n := 0
	for _, c := range sc.CellChanges {
		if c.Type == t {
			n++
		}
	}
	return n
}

// WorkbookDiff is the full comparison result between two snapshots.
//
// TotalChanges counts added sheets, deleted sheets and every cell change of
// the modified sheets. It does not estimate the content of added or deleted
// sheets; see the summary package for that.
type WorkbookDiff struct {
	AddedSheets    []string      `json:"addedSheets" yaml:"addedSheets"`
	DeletedSheets  []string      `json:"deletedSheets" yaml:"deletedSheets"`
	ModifiedSheets []SheetChange `json:"modifiedSheets" yaml:"modifiedSheets"`
	TotalChanges   int           `json:"totalChanges" yaml:"totalChanges"`
}

// Empty returns the zero diff with non-nil slices so it marshals as [] rather
// than null.
func Empty() WorkbookDiff {
	return WorkbookDiff{
		AddedSheets:    []string{},
		DeletedSheets:  []string{},
		ModifiedSheets: []SheetChange{},
	}
}
