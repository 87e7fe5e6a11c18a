// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package excel bridges .xlsx workbooks and wbctl. Import turns a workbook
// into a snapshot so it can be diffed, and Editor exposes an open workbook to
// the highlight package so changes can be painted into a copy of it.
//
// Sheets are identified as "sheet-<n>", n being the zero based position in
// the workbook's sheet list.
package excel
