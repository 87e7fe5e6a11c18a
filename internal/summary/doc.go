// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package summary turns a differ.WorkbookDiff into compact statistics and a
// short, localized one-line summary suitable for a version history card. It
// also offers HasRealChanges, a cheap pre-check that avoids a full diff when
// two snapshots are obviously identical or obviously different.
package summary
