// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseStore parses a local --store value and returns the absolute path and
// any optional book override. The path may be a snapshot file or a directory.
// A book override ("dir::book") is only valid for a directory. It returns an
// error if the fs entry does not exist or the value is empty.
func ParseStore(store string) (string, string, error) {
	if store == "" {
		return "", "", os.ErrInvalid
	}

	var path, book string

	// First, split the path to see if there is a ::book override.
	parts := strings.Split(store, "::")
	if len(parts) > 1 {
		book = parts[1]
	}

	path = parts[0]
	if path == "" {
		path = "."
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		path = filepath.Join(cwd, path)
	}

	r, err := os.Stat(path)
	if err != nil {
		return "", "", err
	}
	if book != "" && !r.IsDir() {
		return "", "", os.ErrInvalid
	}

	return path, book, nil
}
