// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// ErrInvalidDocument is returned when the input is not JSON at all.
var ErrInvalidDocument = errors.New("snapshot is not a JSON document")

// Parse decodes a serialized snapshot. Every structural surprise below the
// document root (a sheet that is not an object, a row that is an array, a
// non-numeric row key) is defaulted to empty and never fails the parse.
func Parse(data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidDocument
	}

	doc := gjson.ParseBytes(data)
	s := New(doc.Get("id").String(), doc.Get("name").String())
	s.Serial = doc.Get("serial").Int()

	if sheets := doc.Get("sheets"); sheets.IsObject() {
		sheets.ForEach(func(key, value gjson.Result) bool {
			s.Sheets[key.String()] = parseSheet(key.String(), value)
			return true
		})
	}

	// Order entries without a sheet, and repeats, are dropped.
	if order := doc.Get("sheetOrder"); order.IsArray() {
		seen := map[string]bool{}
		for _, id := range order.Array() {
			if id.Type != gjson.String || seen[id.String()] {
				continue
			}
			if _, ok := s.Sheets[id.String()]; !ok {
				log.Debugf("sheetOrder id %s has no sheet, dropped", id.String())
				continue
			}
			seen[id.String()] = true
			s.SheetOrder = append(s.SheetOrder, id.String())
		}
	}

	return s, nil
}

// UnmarshalJSON lets a Snapshot be embedded in other JSON documents while
// keeping the forgiving Parse semantics.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

func parseSheet(id string, value gjson.Result) *Sheet {
	if !value.IsObject() {
		log.Debugf("sheet %s is not an object, treating as empty", id)
		return NewSheet(id, "", 0, 0)
	}

	if v := value.Get("id"); v.Type == gjson.String && v.String() != "" {
		id = v.String()
	}
	sh := NewSheet(id, value.Get("name").String(),
		int(value.Get("rowCount").Int()), int(value.Get("columnCount").Int()))

	cellData := value.Get("cellData")
	if !cellData.IsObject() {
		return sh
	}

	cellData.ForEach(func(rowKey, row gjson.Result) bool {
		if _, ok := ParseKey(rowKey.String()); !ok {
			log.Debugf("sheet %s: ignoring row key %q", id, rowKey.String())
			return true
		}
		cells := map[string]*Cell{}
		if row.IsObject() {
			row.ForEach(func(colKey, cell gjson.Result) bool {
				if _, ok := ParseKey(colKey.String()); !ok {
					return true
				}
				cells[colKey.String()] = parseCell(cell)
				return true
			})
		}
		sh.CellData[rowKey.String()] = cells
		return true
	})

	return sh
}

func parseCell(cell gjson.Result) *Cell {
	c := &Cell{}
	if !cell.IsObject() {
		return c
	}

	if v := cell.Get("v"); v.Exists() {
		c.V = parseValue(v)
	}
	if f := cell.Get("f"); f.Type == gjson.String {
		c.F = f.String()
	}
	if st := cell.Get("s"); st.Exists() {
		switch {
		case st.Type == gjson.String && st.String() != "":
			c.S = StyleRef(st.String())
		case st.IsObject():
			if props, ok := st.Value().(map[string]interface{}); ok {
				c.S = StyleProps(props)
			}
		}
	}
	return c
}

func parseValue(v gjson.Result) Value {
	switch v.Type {
	case gjson.String:
		return String(v.String())
	case gjson.Number:
		return Number(v.Float())
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	case gjson.JSON:
		return String(v.Raw)
	default:
		return Null()
	}
}
