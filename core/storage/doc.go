// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for common operations
// like uploading documents, probing key existence, listing objects, and batched
// deletion. This abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream.
//   - StatObject: Probes a key without fetching its body.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive),
//     paging through continuation tokens internally.
//   - RemoveObject / RemoveObjects: Deletes a single key or a batch of up to
//     MaxBatchDelete keys.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "card-vault")
package storage
