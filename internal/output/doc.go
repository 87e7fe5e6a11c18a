// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output flattens diffs, statistics and version lists into rows and
// renders them as text tables, JSON, YAML or the raw document.
package output
