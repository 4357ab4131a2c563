// Package storage reads template roots from S3-compatible object storage.
//
// Roots written as "s3://bucket/prefix" in the generator configuration are served by
// core/resolver through the Client defined here. Only reads are needed: a run checks
// that the bucket exists, stats candidate templates and downloads the ones it uses.
//
//	client, err := storage.NewClient(cfg.Storage)
//	ok, err := client.BucketExists(ctx, cfg.Storage.Bucket)
//
// Tests use the testify mock in core/storage/mocks.
package storage
