// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws builds the AWS SDK config and S3 client used by the s3
// snapshot store.
package aws
