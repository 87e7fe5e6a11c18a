// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SortDataset stable sorts rows by a comma separated list of output keys. A
// leading - sorts that key descending and a leading ! compares it case
// sensitively. Numbers compare numerically and cell references such as A2 and
// A10 in sheet order (row, then column). Everything else compares as text.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if strings.TrimSpace(spec) == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(resultSet, func(one, two int) bool {
		for _, field := range fields {
			field = strings.TrimSpace(field)

			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue := resultSet[one][field]
			twoValue := resultSet[two][field]

			oneNum, oneOk := oneValue.(float64)
			twoNum, twoOk := twoValue.(float64)
			if oneOk && twoOk {
				if oneNum != twoNum {
					return (oneNum < twoNum) == ascending
				}
				continue
			}

			oneStr := InterfaceToString(oneValue)
			twoStr := InterfaceToString(twoValue)
			if less, ok := compareCells(oneStr, twoStr); ok {
				if less != 0 {
					return (less < 0) == ascending
				}
				continue
			}

			if !caseSensitive {
				oneStr = strings.ToLower(oneStr)
				twoStr = strings.ToLower(twoStr)
			}

			if oneStr != twoStr {
				return (oneStr < twoStr) == ascending
			}
		}
		return false
	})
}

// compareCells orders two cell references by row and then column. ok is false
// unless both values are cell references.
func compareCells(one, two string) (cmp int, ok bool) {
	oneCol, oneRow, err := excelize.CellNameToCoordinates(one)
	if err != nil {
		return 0, false
	}
	twoCol, twoRow, err := excelize.CellNameToCoordinates(two)
	if err != nil {
		return 0, false
	}

	switch {
	case oneRow != twoRow:
		return oneRow - twoRow, true
	default:
		return oneCol - twoCol, true
	}
}
