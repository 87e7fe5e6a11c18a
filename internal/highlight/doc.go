// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package highlight paints the changed cells of a differ.WorkbookDiff onto a
// live workbook and restores the original styling afterwards, either when the
// returned cleanup is called or when the fade timer fires.
//
// The workbook is reached through the Editor interface so any spreadsheet
// surface can be plugged in; internal/excel provides one over excelize.
//
// Sessions touching the same cells must not overlap: a session reverts to the
// styles it captured, so cleanup the previous session before starting a new
// one. The same applies to live edits made while a session is applied.
package highlight
