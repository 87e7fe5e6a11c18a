// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil keeps downloaded snapshot versions on disk so repeated
// diffs of the same history do not refetch them from the store.
package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tfctl/wbctl/internal/log"
)

// Entry is one cached snapshot version. Key is the clear-text key and Path
// the hashed location on disk.
type Entry struct {
	Key  string
	Path string
	Data []byte
}

// Dir resolves the base cache directory: WBCTL_CACHE_DIR when set, otherwise
// os.UserCacheDir()/wbctl. Returns ("", false) when neither resolves.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("WBCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "wbctl"), true
	}
	return "", false
}

// Enabled is true unless WBCTL_CACHE is "0" or "false".
func Enabled() bool {
	v := os.Getenv("WBCTL_CACHE")
	return v != "0" && !strings.EqualFold(v, "false")
}

// Key joins the parts identifying a cached object, typically the store, the
// object and its version id.
func Key(parts ...string) string {
	return strings.Join(parts, "\x00")
}

// path returns where key lives under namespace.
func path(namespace, key string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(base, namespace, hex.EncodeToString(sum[:])), true
}

// Read returns the cached entry for key, if any.
func Read(namespace, key string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := path(namespace, key)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: %s", p)
	return &Entry{Key: key, Path: p, Data: b}, true
}

// Write stores data for key. The file is written beside its final name and
// renamed into place so a concurrent reader never sees a partial entry.
func Write(namespace, key string, data []byte) error {
	if !Enabled() {
		return nil
	}
	p, ok := path(namespace, key)
	if !ok {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debugf("cache write: %s", p)
	return nil
}

// Purge removes entries older than maxAge. A non-positive maxAge disables
// purging.
func Purge(maxAge time.Duration) error {
	if maxAge <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	err := filepath.WalkDir(base, func(p string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(p); err != nil {
				log.WithError(err).Warnf("failed to remove cache file %s", p)
			} else {
				log.Debugf("removed cache file %s", p)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}
