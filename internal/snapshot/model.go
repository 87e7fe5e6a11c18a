// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"sort"
	"strconv"
)

// Snapshot is a full point-in-time serialization of a workbook.
type Snapshot struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Serial     int64             `json:"serial,omitempty"`
	SheetOrder []string          `json:"sheetOrder"`
	Sheets     map[string]*Sheet `json:"sheets"`
}

// Sheet is one worksheet. CellData is sparse: rowKey -> colKey -> Cell. A
// missing row, column or cell means empty.
type Sheet struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	RowCount    int                         `json:"rowCount"`
	ColumnCount int                         `json:"columnCount"`
	CellData    map[string]map[string]*Cell `json:"cellData"`
}

// Cell is a single populated cell.
type Cell struct {
	V Value  `json:"v"`
	F string `json:"f,omitempty"`
	S *Style `json:"s,omitempty"`
}

// New returns an empty snapshot.
func New(id, name string) *Snapshot {
	return &Snapshot{
		ID:         id,
		Name:       name,
		SheetOrder: []string{},
		Sheets:     map[string]*Sheet{},
	}
}

// NewSheet returns an empty sheet with the given dimensions.
func NewSheet(id, name string, rows, cols int) *Sheet {
	return &Sheet{
		ID:          id,
		Name:        name,
		RowCount:    rows,
		ColumnCount: cols,
		CellData:    map[string]map[string]*Cell{},
	}
}

// AddSheet appends sh to the sheet order and registers it.
func (s *Snapshot) AddSheet(sh *Sheet) *Snapshot {
	if s.Sheets == nil {
		s.Sheets = map[string]*Sheet{}
	}
	if _, exists := s.Sheets[sh.ID]; !exists {
		s.SheetOrder = append(s.SheetOrder, sh.ID)
	}
	s.Sheets[sh.ID] = sh
	return s
}

// Sheet returns the sheet with id, or nil.
func (s *Snapshot) Sheet(id string) *Sheet {
	if s == nil || s.Sheets == nil {
		return nil
	}
	return s.Sheets[id]
}

// Cell returns the cell at (row, col), or nil when empty.
func (sh *Sheet) Cell(row, col int) *Cell {
	if sh == nil {
		return nil
	}
	return sh.CellData[Key(row)][Key(col)]
}

// Set stores c at (row, col). A nil cell clears the position.
func (sh *Sheet) Set(row, col int, c *Cell) *Sheet {
	if sh.CellData == nil {
		sh.CellData = map[string]map[string]*Cell{}
	}
	r := sh.CellData[Key(row)]
	if c == nil {
		delete(r, Key(col))
		return sh
	}
	if r == nil {
		r = map[string]*Cell{}
		sh.CellData[Key(row)] = r
	}
	r[Key(col)] = c
	return sh
}

// Key formats a row or column index as a cellData map key.
func Key(i int) string {
	return strconv.Itoa(i)
}

// ParseKey parses a cellData map key. Negative or non-numeric keys are
// rejected.
func ParseKey(k string) (int, bool) {
	i, err := strconv.Atoi(k)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// SortedKeys returns the keys of m ordered numerically.
func SortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := ParseKey(keys[i])
		b, _ := ParseKey(keys[j])
		return a < b
	})
	return keys
}
