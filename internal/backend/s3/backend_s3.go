// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	awsx "github.com/tfctl/wbctl/internal/aws"
	"github.com/tfctl/wbctl/internal/snapshot"
)

// API is the part of the S3 client the backend uses.
type API interface {
	s3v2.ListObjectVersionsAPIClient
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// BackendS3 is a single versioned S3 object; every object version is a
// snapshot version.
type BackendS3 struct {
	Ctx     context.Context
	Cmd     *cli.Command
	Bucket  string
	Key     string
	Limit   int
	AWSOpts []awsx.Option

	client API
}

// Versions implements backend.Backend. Versions older than the most recent
// delete marker of the key are dropped, since they belong to a previous life
// of the object. Each body is fetched once, through the cache, to read its
// serial.
func (be *BackendS3) Versions(ctx context.Context) ([]*snapshot.Version, error) {
	svc, err := be.svc(ctx)
	if err != nil {
		return nil, err
	}

	paginator := s3v2.NewListObjectVersionsPaginator(svc, &s3v2.ListObjectVersionsInput{
		Bucket: awsv2.String(be.Bucket),
		Prefix: awsv2.String(be.Key),
	})

	var mostRecentDelete time.Time
	var versions []*snapshot.Version
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list object versions: %w", err)
		}

		for _, d := range page.DeleteMarkers {
			// Prefix listing also returns siblings such as book.json.lock.
			if awsv2.ToString(d.Key) != be.Key {
				continue
			}
			if d.LastModified != nil && d.LastModified.After(mostRecentDelete) {
				mostRecentDelete = *d.LastModified
			}
		}

		for _, v := range page.Versions {
			if awsv2.ToString(v.Key) != be.Key || v.VersionId == nil || v.LastModified == nil {
				if v.Key != nil {
					log.Debugf("Throwing away %s", *v.Key)
				}
				continue
			}
			versions = append(versions, &snapshot.Version{
				ID:        *v.VersionId,
				CreatedAt: *v.LastModified,
			})
		}
	}

	current := versions[:0]
	for _, v := range versions {
		if v.CreatedAt.Before(mostRecentDelete) {
			continue
		}
		current = append(current, v)
	}

	sort.Slice(current, func(i, j int) bool {
		return current[i].CreatedAt.After(current[j].CreatedAt)
	})

	if be.Limit > 0 && len(current) > be.Limit {
		current = current[:be.Limit]
	}

	for _, v := range current {
		body, err := be.Snapshot(ctx, v)
		if err != nil {
			log.WithError(err).Warnf("serial of version %s unknown", v.ID)
			continue
		}
		v.Serial = gjson.GetBytes(body, "serial").Int()
	}

	return current, nil
}

// Snapshot implements backend.Backend.
func (be *BackendS3) Snapshot(ctx context.Context, v *snapshot.Version) ([]byte, error) {
	if entry, ok := CacheReader(be, v.ID); ok {
		return entry.Data, nil
	}

	svc, err := be.svc(ctx)
	if err != nil {
		return nil, err
	}

	result, err := svc.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket:    awsv2.String(be.Bucket),
		Key:       awsv2.String(be.Key),
		VersionId: awsv2.String(v.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	if err := CacheWriter(be, v.ID, data); err != nil {
		log.WithError(err).Warn("error writing to cache")
	}

	return data, nil
}

func (be *BackendS3) String() string {
	return "s3://" + be.Bucket + "/" + be.Key
}

// svc lazily builds the S3 client.
func (be *BackendS3) svc(ctx context.Context) (API, error) {
	if be.client != nil {
		return be.client, nil
	}

	cfg, err := awsx.LoadConfig(ctx, be.AWSOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	be.client = awsx.NewS3(cfg, be.AWSOpts...)
	return be.client, nil
}
