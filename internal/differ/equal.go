// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/yudai/gojsondiff"

	"github.com/tfctl/wbctl/internal/snapshot"
)

// StylesEqual compares two style descriptors structurally. References are
// equal when they name the same table entry; inline styles are equal when
// their property trees hold the same content, regardless of identity.
func StylesEqual(a, b *snapshot.Style) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.IsRef() || b.IsRef() {
		return a.Ref == b.Ref
	}
	return !gojsondiff.New().CompareObjects(a.Props, b.Props).Modified()
}

// CellsEqual reports whether two cells carry the same value, formula and
// style. Two nil cells are equal.
func CellsEqual(a, b *snapshot.Cell) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.V.Equal(b.V) && a.F == b.F && StylesEqual(a.S, b.S)
}
