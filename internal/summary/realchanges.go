// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/tfctl/wbctl/internal/log"
	"github.com/tfctl/wbctl/internal/snapshot"
)

// HasRealChanges reports whether old and new differ, without running the
// differ. It compares the sorted sheet id sets, then each shared sheet's name
// and serialized cell data. A missing snapshot is "no changes", matching
// CalculateDiffStats.
//
// The serialized comparison can report a change the differ would not find,
// for example a renamed sheet or an empty row object present on one side
// only. It never reports "no changes" when the differ would find cell
// changes.
func HasRealChanges(old, new *snapshot.Snapshot) bool {
	if old == new {
		return false
	}
	if old == nil || new == nil {
		return false
	}

	oldIDs := snapshot.SortedKeys(old.Sheets)
	newIDs := snapshot.SortedKeys(new.Sheets)
	slices.Sort(oldIDs)
	slices.Sort(newIDs)
	if !slices.Equal(oldIDs, newIDs) {
		return true
	}

	for _, id := range oldIDs {
		o, n := old.Sheets[id], new.Sheets[id]
		if o == n {
			continue
		}
		if o == nil || n == nil {
			return true
		}
		if o.Name != n.Name {
			return true
		}

		ob, oerr := json.Marshal(o.CellData)
		nb, nerr := json.Marshal(n.CellData)
		if oerr != nil || nerr != nil {
			log.Debugf("cell data of sheet %s not serializable, assuming changed", id)
			return true
		}
		if !bytes.Equal(ob, nb) {
			return true
		}
	}

	return false
}
