// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/wbctl/internal/log"
)

// options holds overrides applied when loading config and building the S3
// client of a snapshot store.
type options struct {
	profile  string
	region   string
	endpoint string
	retryer  func() awsv2.Retryer
}

// Option customizes how the store client is built. With no options the
// shell's AWS setup is inherited (AWS_PROFILE, shared config, env, IMDS).
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion overrides the region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the client at an S3 compatible store (MinIO, LocalStack)
// and switches to path style addressing.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithRetryer injects a custom retryer.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LoadConfig loads AWS SDK config honoring profile, region and retryer
// overrides.
func LoadConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	o := apply(opts)
	log.Debugf("aws opts: profile=%s region=%s endpoint=%s", o.profile, o.region, o.endpoint)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return awsv2.Config{}, err
	}
	return cfg, nil
}

// NewS3 builds the S3 client for a snapshot store from cfg. Only the endpoint
// option is consulted here; the rest belong to LoadConfig.
func NewS3(cfg awsv2.Config, opts ...Option) *s3v2.Client {
	o := apply(opts)
	return s3v2.NewFromConfig(cfg, s3Options(o)...)
}

func s3Options(o options) []func(*s3v2.Options) {
	if o.endpoint == "" {
		return nil
	}
	return []func(*s3v2.Options){func(so *s3v2.Options) {
		so.BaseEndpoint = awsv2.String(o.endpoint)
		so.UsePathStyle = true
	}}
}
