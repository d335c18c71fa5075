// Package oss provides a high-level Go module for Aliyun OSS operations.
// It speaks the OSS REST API directly, signing every request with the
// account's key pair, while exposing an intuitive interface for common
// object-storage tasks.
//
// The module emphasizes developer experience through simple APIs while
// keeping the wire protocol fully under its control: header signing,
// pre-signed URLs, and streaming XML decoding of listings are all
// implemented in-process with no SDK dependency.
//
// Key features:
//   - Single-bucket client with validated credentials and endpoints
//   - Progressive enhancement through functional options
//   - Object upload, download, metadata, existence and delete operations
//   - Lazy pagers for object and bucket listings
//   - STS security-token support and pre-signed GET URLs
//   - Comprehensive error handling with typed sentinel errors
//
// Example usage:
//
//	client, err := oss.NewFromEnv()
//	if err != nil {
//	    return err
//	}
//
//	// Upload a file
//	etag, err := client.PutFile(ctx, "path/file.txt", "/local/file.txt")
//	if err != nil {
//	    return err
//	}
package oss
