// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"sort"

	"github.com/tfctl/wbctl/internal/log"
	"github.com/tfctl/wbctl/internal/snapshot"
)

// DiffWorkbooks compares two snapshots. It never fails: a nil snapshot on
// either side yields the empty diff, and malformed content has already been
// defaulted to empty by the snapshot parser.
func DiffWorkbooks(oldSnap, newSnap *snapshot.Snapshot) WorkbookDiff {
	diff := Empty()
	if oldSnap == nil || newSnap == nil {
		return diff
	}

	// Ids are taken once each, and only when the snapshot owning the order
	// also holds the sheet.
	for _, id := range sheetIDs(newSnap) {
		if _, ok := oldSnap.Sheets[id]; !ok {
			diff.AddedSheets = append(diff.AddedSheets, id)
		}
	}
	for _, id := range sheetIDs(oldSnap) {
		if _, ok := newSnap.Sheets[id]; !ok {
			diff.DeletedSheets = append(diff.DeletedSheets, id)
		}
	}

	for _, id := range sheetIDs(newSnap) {
		oldSheet, inOld := oldSnap.Sheets[id]
		if !inOld {
			continue
		}
		newSheet := newSnap.Sheets[id]

		sc := DiffSheets(id, oldSheet, newSheet)
		if sc.HasChanges() {
			diff.ModifiedSheets = append(diff.ModifiedSheets, sc)
		}
	}

	diff.TotalChanges = len(diff.AddedSheets) + len(diff.DeletedSheets)
	for _, sc := range diff.ModifiedSheets {
		diff.TotalChanges += len(sc.CellChanges)
	}

	log.Debugf("diff: added=%d deleted=%d modified=%d total=%d",
		len(diff.AddedSheets), len(diff.DeletedSheets), len(diff.ModifiedSheets), diff.TotalChanges)

	return diff
}

// DiffSheets compares the cells of one sheet present in both snapshots. The
// result always has type Modified; callers decide whether it is worth
// keeping via HasChanges. Nil sheets are treated as empty.
func DiffSheets(sheetID string, oldSheet, newSheet *snapshot.Sheet) SheetChange {
	if oldSheet == nil {
		oldSheet = snapshot.NewSheet(sheetID, "", 0, 0)
	}
	if newSheet == nil {
		newSheet = snapshot.NewSheet(sheetID, "", 0, 0)
	}

	name := newSheet.Name
	if name == "" {
		name = oldSheet.Name
	}

	sc := SheetChange{
		SheetID:     sheetID,
		SheetName:   name,
		Type:        Modified,
		CellChanges: []CellChange{},
		Approximate: true,
	}

	for _, rowKey := range unionKeys(oldSheet.CellData, newSheet.CellData) {
		row, _ := snapshot.ParseKey(rowKey)
		oldRow := oldSheet.CellData[rowKey]
		newRow := newSheet.CellData[rowKey]

		for _, colKey := range unionKeys(oldRow, newRow) {
			col, _ := snapshot.ParseKey(colKey)
			if cc, changed := diffCell(sheetID, row, col, oldRow[colKey], newRow[colKey]); changed {
				sc.CellChanges = append(sc.CellChanges, cc)
			}
		}
	}

	sc.AddedRows = grownRows(oldSheet, newSheet)
	sc.AddedCols = grownCols(oldSheet, newSheet)

	return sc
}

// diffCell compares one position. Both cells may be nil because the caller
// walks the union of keys; that case reports no change.
func diffCell(sheetID string, row, col int, o, n *snapshot.Cell) (CellChange, bool) {
	cc := CellChange{Row: row, Col: col, SheetID: sheetID}

	switch {
	case o == nil && n == nil:
		return cc, false

	case n == nil:
		cc.Type = Deleted
		cc.OldValue = valuePtr(o.V)
		cc.OldFormula = formulaPtr(o.F)
		cc.OldStyle = o.S
		return cc, true

	case o == nil:
		cc.Type = Added
		cc.NewValue = valuePtr(n.V)
		cc.NewFormula = formulaPtr(n.F)
		cc.NewStyle = n.S
		return cc, true
	}

	if CellsEqual(o, n) {
		return cc, false
	}

	cc.Type = Modified
	cc.OldValue = valuePtr(o.V)
	cc.NewValue = valuePtr(n.V)
	cc.OldFormula = formulaPtr(o.F)
	cc.NewFormula = formulaPtr(n.F)
	cc.OldStyle = o.S
	cc.NewStyle = n.S
	return cc, true
}

// sheetIDs returns the ordered, distinct ids of s that name a sheet in s.
func sheetIDs(s *snapshot.Snapshot) []string {
	ids := make([]string, 0, len(s.SheetOrder))
	seen := make(map[string]bool, len(s.SheetOrder))
	for _, id := range s.SheetOrder {
		if _, ok := s.Sheets[id]; !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// grownRows returns the rows beyond the old row count that hold data in the
// new sheet.
func grownRows(oldSheet, newSheet *snapshot.Sheet) []int {
	if newSheet.RowCount <= oldSheet.RowCount {
		return nil
	}

	var rows []int
	for key, cells := range newSheet.CellData {
		r, ok := snapshot.ParseKey(key)
		if !ok || r < oldSheet.RowCount || r >= newSheet.RowCount {
			continue
		}
		if len(cells) > 0 {
			rows = append(rows, r)
		}
	}
	sort.Ints(rows)
	return rows
}

// grownCols returns the columns beyond the old column count that hold data
// in any row of the new sheet.
func grownCols(oldSheet, newSheet *snapshot.Sheet) []int {
	if newSheet.ColumnCount <= oldSheet.ColumnCount {
		return nil
	}

	found := map[int]bool{}
	for _, cells := range newSheet.CellData {
		for key := range cells {
			c, ok := snapshot.ParseKey(key)
			if !ok || c < oldSheet.ColumnCount || c >= newSheet.ColumnCount {
				continue
			}
			found[c] = true
		}
	}

	var cols []int
	for c := range found {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	return cols
}

// unionKeys returns the keys present in either map, ordered numerically.
func unionKeys[T any](a, b map[string]T) []string {
	union := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		union[k] = struct{}{}
	}
	for k := range b {
		union[k] = struct{}{}
	}
	return snapshot.SortedKeys(union)
}

func valuePtr(v snapshot.Value) *snapshot.Value {
	return &v
}

func formulaPtr(f string) *string {
	if f == "" {
		return nil
	}
	return &f
}
