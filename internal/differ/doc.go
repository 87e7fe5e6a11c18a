// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes structured differences between two workbook
// snapshots and hosts the interactive picker used to choose which two stored
// versions to compare.
package differ
