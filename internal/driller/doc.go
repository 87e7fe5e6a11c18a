// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller extracts values from the flattened JSON rows that commands
// list, so filters, sorting and output address fields by dot path.
package driller
