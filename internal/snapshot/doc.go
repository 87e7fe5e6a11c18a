// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot defines the point-in-time workbook document that wbctl
// compares. A snapshot is a tree of sheets, sparse rows and sparse cells as
// serialized by the spreadsheet editor, plus the Version metadata used to
// address stored snapshots.
//
// Parsing is deliberately forgiving. Anything with an unexpected shape is
// treated as empty rather than rejected, so a partially written or older
// snapshot still diffs.
package snapshot
