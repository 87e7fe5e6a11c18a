// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import "time"

// Version identifies one stored snapshot of a workbook. Path is set by
// backends that can read the body directly (local files, explicit paths).
type Version struct {
	ID        string    `json:"id" yaml:"id"`
	Serial    int64     `json:"serial" yaml:"serial"`
	CreatedAt time.Time `json:"created-at" yaml:"created-at"`
	Path      string    `json:"path,omitempty" yaml:"path,omitempty"`
}
