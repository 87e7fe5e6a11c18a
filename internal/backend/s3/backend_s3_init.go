// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	awsx "github.com/tfctl/wbctl/internal/aws"
)

type BackendS3Option = func(ctx context.Context, cmd *cli.Command, be *BackendS3) error

// NewBackendS3 returns a BackendS3 configured by options. FromURL or
// WithBucket is required.
func NewBackendS3(ctx context.Context, cmd *cli.Command, options ...BackendS3Option) (*BackendS3, error) {
	be := &BackendS3{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	if be.Bucket == "" || be.Key == "" {
		return nil, fmt.Errorf("s3 store needs a bucket and a key")
	}

	PurgeCache()
	return be, nil
}

// FromURL parses s3://bucket/path/to/book.snapshot.json.
func FromURL(raw string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid s3 url %s: %w", raw, err)
		}
		if u.Scheme != "s3" {
			return fmt.Errorf("invalid s3 url %s: scheme must be s3", raw)
		}
		be.Bucket = u.Host
		be.Key = strings.TrimPrefix(u.Path, "/")
		log.Debugf("NewBackendS3 FromURL(): bucket=%s key=%s", be.Bucket, be.Key)
		return nil
	}
}

// WithBucket sets the bucket and key directly.
func WithBucket(bucket, key string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.Bucket = bucket
		be.Key = key
		return nil
	}
}

// FromCommand applies the region, profile, endpoint and limit flags of cmd.
// A nil cmd is ignored.
func FromCommand() BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if cmd == nil {
			return nil
		}
		if r := cmd.String("region"); r != "" {
			be.AWSOpts = append(be.AWSOpts, awsx.WithRegion(r))
		}
		if p := cmd.String("profile"); p != "" {
			be.AWSOpts = append(be.AWSOpts, awsx.WithProfile(p))
		}
		if e := cmd.String("endpoint"); e != "" {
			be.AWSOpts = append(be.AWSOpts, awsx.WithEndpoint(e))
		}
		be.Limit = cmd.Int("limit")
		return nil
	}
}

// WithClient injects the S3 client instead of building one from AWS config.
func WithClient(client API) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.client = client
		return nil
	}
}

// WithLimit caps the number of versions listed.
func WithLimit(limit int) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.Limit = limit
		return nil
	}
}
