// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"time"

	"github.com/apex/log"

	"github.com/tfctl/wbctl/internal/cacheutil"
	"github.com/tfctl/wbctl/internal/config"
)

// cacheNamespace groups S3 snapshot bodies in the cache. Object versions are
// immutable, so entries never go stale; only age based purging removes them.
const cacheNamespace = "s3"

func cacheKey(be *BackendS3, versionID string) string {
	return cacheutil.Key(be.Bucket, be.Key, versionID)
}

// CacheReader returns the cached body of versionID, if any.
func CacheReader(be *BackendS3, versionID string) (*cacheutil.Entry, bool) {
	return cacheutil.Read(cacheNamespace, cacheKey(be, versionID))
}

// CacheWriter stores the body of versionID.
func CacheWriter(be *BackendS3, versionID string, data []byte) error {
	return cacheutil.Write(cacheNamespace, cacheKey(be, versionID), data)
}

// PurgeCache drops entries older than the cache.clean config value, in hours.
func PurgeCache() {
	cleanHours, _ := config.GetInt("cache.clean")
	if err := cacheutil.Purge(time.Duration(cleanHours) * time.Hour); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}
}
