// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command holds the wbctl subcommands. Each one resolves two
// workbook snapshots through a backend and hands them to the differ,
// summary or highlight packages, shaping results with the output package.
package command
