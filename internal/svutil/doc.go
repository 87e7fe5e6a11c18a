// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package svutil resolves user supplied snapshot version specs (SV~1, a
// serial, an id prefix or a file path) against a store's version list.
package svutil
