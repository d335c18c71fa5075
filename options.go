// Package oss provides functional options for configuring OSS client behavior.
// These options follow the functional options pattern for clean, composable configuration.
package oss

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/osstypes"
)

// WithTimeout sets the timeout for individual OSS requests.
// Default is 60 seconds. Ignored when a custom HTTP client is provided.
func WithTimeout(timeout time.Duration) osstypes.Option {
	return func(c *osstypes.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithCustomHTTPClient allows providing a custom HTTP client.
// This gives full control over HTTP behavior including timeouts, proxies, etc.
func WithCustomHTTPClient(client *http.Client) osstypes.Option {
	return func(c *osstypes.ClientConfig) {
		c.CustomHTTPClient = client
	}
}

// WithLogger sets a structured logger for the client. Operations log
// through it at Info and Error levels. Default is no logging.
func WithLogger(logger *slog.Logger) osstypes.Option {
	return func(c *osstypes.ClientConfig) {
		c.Logger = logger
	}
}

// WithFilesystem sets a custom filesystem implementation for file operations.
// This allows using in-memory filesystems for testing or virtual filesystems.
// If not specified, defaults to the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) osstypes.Option {
	return func(c *osstypes.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithBaseURL overrides the endpoint-derived service URL with an
// absolute base URL. This is useful for custom domains bound to a
// bucket, or for local testing against a fake server. Request signing
// is unaffected; signatures are always computed from the bucket and
// object names.
func WithBaseURL(rawURL string) osstypes.Option {
	return func(c *osstypes.ClientConfig) {
		c.BaseURL = rawURL
	}
}

// WithContentTypeDetector replaces the default upload content type
// detection (payload sniffing with an extension fallback) with a custom
// strategy.
func WithContentTypeDetector(detector osstypes.ContentTypeDetector) osstypes.Option {
	return func(c *osstypes.ClientConfig) {
		c.ContentTypeDetector = detector
	}
}

// WithContentType sets the Content-Type for an upload, bypassing
// automatic detection.
func WithContentType(contentType string) osstypes.UploadOption {
	return func(c *osstypes.UploadOptionConfig) {
		c.ContentType = contentType
	}
}

// WithStorageClass sets the storage class for an upload.
// Default is the bucket's default class (normally Standard).
func WithStorageClass(storageClass osstypes.StorageClass) osstypes.UploadOption {
	return func(c *osstypes.UploadOptionConfig) {
		c.StorageClass = storageClass
	}
}

// WithRange restricts a download to the inclusive byte range
// [start, end], as in the HTTP Range header. The service answers with
// 206 Partial Content and only those bytes.
func WithRange(start, end int64) osstypes.DownloadOption {
	return func(c *osstypes.DownloadOptionConfig) {
		c.RangeSpec = osstypes.Range{Start: start, End: end}.Spec()
	}
}

// WithRangeFrom restricts a download to the bytes from offset start to
// the end of the object.
func WithRangeFrom(start int64) osstypes.DownloadOption {
	return func(c *osstypes.DownloadOptionConfig) {
		c.RangeSpec = osstypes.Range{Start: start, End: -1}.Spec()
	}
}

// WithPrefix limits a listing to keys beginning with prefix.
func WithPrefix(prefix string) osstypes.ListOption {
	return func(c *osstypes.ListOptionConfig) {
		c.Prefix = prefix
	}
}

// WithDelimiter groups keys by delimiter, reporting each distinct
// prefix up to the delimiter as a common prefix instead of listing the
// keys under it. Use "/" for directory-style grouping.
func WithDelimiter(delimiter string) osstypes.ListOption {
	return func(c *osstypes.ListOptionConfig) {
		c.Delimiter = delimiter
	}
}

// WithMaxKeys caps the number of results per page.
// Default is the service default (100, maximum 1000).
func WithMaxKeys(maxKeys int32) osstypes.ListOption {
	return func(c *osstypes.ListOptionConfig) {
		if maxKeys > 0 {
			c.MaxKeys = maxKeys
		}
	}
}

// WithStartAfter starts an object listing after the given key.
func WithStartAfter(startAfter string) osstypes.ListOption {
	return func(c *osstypes.ListOptionConfig) {
		c.StartAfter = startAfter
	}
}

// WithContinuationToken resumes an object listing from a token returned
// by a previous page.
func WithContinuationToken(token string) osstypes.ListOption {
	return func(c *osstypes.ListOptionConfig) {
		c.ContinuationToken = token
	}
}

// WithEncodingType asks the service to encode response keys, e.g. "url".
func WithEncodingType(encodingType string) osstypes.ListOption {
	return func(c *osstypes.ListOptionConfig) {
		c.EncodingType = encodingType
	}
}

// WithFetchOwner includes owner information in object listings.
func WithFetchOwner(fetchOwner bool) osstypes.ListOption {
	return func(c *osstypes.ListOptionConfig) {
		c.FetchOwner = fetchOwner
	}
}

// WithMarker resumes a bucket listing from a marker returned by a
// previous page. Object listings use WithContinuationToken instead.
func WithMarker(marker string) osstypes.ListOption {
	return func(c *osstypes.ListOptionConfig) {
		c.Marker = marker
	}
}
