// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package backend implements the snapshot stores wbctl reads version history
// from (a local directory of snapshot files, or a versioned S3 object) and
// the shared logic for turning version specs into snapshot documents.
package backend
