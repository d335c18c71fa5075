// Package oss provides the main OSS client and core operations.
package oss

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/decode"
	osserrors "github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/internal/signer"
	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/osstypes"
)

const (
	// DefaultContentType is the default content type used when content type detection fails
	DefaultContentType = "application/octet-stream"
)

// Header names used by the object operations.
const (
	headerContentType  = "Content-Type"
	headerETag         = "ETag"
	headerLastModified = "Last-Modified"
	headerRange        = "Range"
	headerStorageClass = "x-oss-storage-class"
)

// sniffLen caps how many bytes of a payload are inspected during
// content type detection.
const sniffLen = 512

// Put uploads data to the bucket under key.
// The Content-Type is taken from WithContentType when given; otherwise it
// is sniffed from the payload, falling back to the key's extension.
//
// Returns:
//   - string: The ETag the service assigned to the stored object
//   - error: Returns an error if the upload fails
//
// Errors:
//   - ErrInvalidInput: If key is not a valid object path
//   - ErrAccessDenied: If the credentials lack permission to write
//   - ErrBucketNotFound: If the bucket doesn't exist
//   - Network errors or service errors wrapped in Error type
//
// Example:
//
//	etag, err := client.Put(ctx, "docs/readme.md", data,
//	    oss.WithContentType("text/markdown"),
//	)
//	if err != nil {
//	    return fmt.Errorf("failed to upload: %w", err)
//	}
func (c *Client) Put(ctx context.Context, key string, data []byte, opts ...osstypes.UploadOption) (string, error) {
	objectPath, err := osstypes.NewObjectPath(key)
	if err != nil {
		return "", osserrors.NewError("put", osserrors.ErrInvalidInput).
			WithBucket(c.bucket.String()).
			WithKey(key).
			WithMessage(err.Error())
	}

	// Apply upload options
	config := &osstypes.UploadOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.ContentType == "" {
		config.ContentType = c.detect(key, data)
	}

	req, err := c.newRequest(ctx, http.MethodPut, objectPath.String(), nil, bytes.NewReader(data))
	if err != nil {
		return "", osserrors.NewObjectError("put", c.bucket.String(), key, err)
	}
	req.Header.Set(headerContentType, config.ContentType)
	if config.StorageClass != "" {
		req.Header.Set(headerStorageClass, string(config.StorageClass))
	}

	resp, err := c.send(req, signer.CanonicalResource(c.bucket.String(), objectPath.String(), nil))
	if err != nil {
		return "", osserrors.NewObjectError("put", c.bucket.String(), key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.logger != nil {
		c.logger.InfoContext(ctx, "put object",
			"bucket", c.bucket.String(),
			"key", key,
			"size", len(data),
			"content_type", config.ContentType)
	}

	return strings.Trim(resp.Header.Get(headerETag), `"`), nil
}

// PutFile uploads a local file to the bucket under key. The file is read
// through the client's filesystem abstraction, so an in-memory filesystem
// configured via WithFilesystem works transparently.
//
// Returns:
//   - string: The ETag the service assigned to the stored object
//   - error: Returns an error if reading the file or the upload fails
//
// Example:
//
//	etag, err := client.PutFile(ctx, "backups/db.dump", "/var/backups/db.dump")
func (c *Client) PutFile(ctx context.Context, key, path string, opts ...osstypes.UploadOption) (string, error) {
	if _, err := osstypes.NewObjectPath(key); err != nil {
		return "", osserrors.NewError("putFile", osserrors.ErrInvalidInput).
			WithBucket(c.bucket.String()).
			WithKey(key).
			WithMessage(err.Error())
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		return "", osserrors.NewObjectError("putFile", c.bucket.String(), key, err)
	}

	// Prefer an explicit content type from the local file name when the
	// caller did not set one; the object key decides only as a fallback.
	config := &osstypes.UploadOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.ContentType == "" {
		opts = append(opts, WithContentType(c.detect(path, data)))
	}

	return c.Put(ctx, key, data, opts...)
}

// Get downloads an object's content into memory. A byte range can be
// requested with WithRange; the service then responds with just those
// bytes.
//
// Returns:
//   - []byte: The object content (or the requested range of it)
//   - error: Returns an error if the download fails
//
// Errors:
//   - ErrInvalidInput: If key is not a valid object path
//   - ErrObjectNotFound: If the object doesn't exist
//   - ErrAccessDenied: If the credentials lack permission to read
//   - Network errors or service errors wrapped in Error type
//
// Example:
//
//	data, err := client.Get(ctx, "docs/readme.md")
//	if err != nil {
//	    return fmt.Errorf("failed to download: %w", err)
//	}
func (c *Client) Get(ctx context.Context, key string, opts ...osstypes.DownloadOption) ([]byte, error) {
	objectPath, err := osstypes.NewObjectPath(key)
	if err != nil {
		return nil, osserrors.NewError("get", osserrors.ErrInvalidInput).
			WithBucket(c.bucket.String()).
			WithKey(key).
			WithMessage(err.Error())
	}

	config := &osstypes.DownloadOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	req, err := c.newRequest(ctx, http.MethodGet, objectPath.String(), nil, nil)
	if err != nil {
		return nil, osserrors.NewObjectError("get", c.bucket.String(), key, err)
	}
	if config.RangeSpec != "" {
		req.Header.Set(headerRange, config.RangeSpec)
	}

	resp, err := c.send(req, signer.CanonicalResource(c.bucket.String(), objectPath.String(), nil))
	if err != nil {
		return nil, osserrors.NewObjectError("get", c.bucket.String(), key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, osserrors.NewObjectError("get", c.bucket.String(), key, err)
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "get object",
			"bucket", c.bucket.String(),
			"key", key,
			"size", len(data))
	}

	return data, nil
}

// GetFile downloads an object and writes it to path through the client's
// filesystem abstraction, creating parent directories as needed.
func (c *Client) GetFile(ctx context.Context, key, path string, opts ...osstypes.DownloadOption) error {
	data, err := c.Get(ctx, key, opts...)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := c.fs.MkdirAll(dir, 0o755); err != nil {
			return osserrors.NewObjectError("getFile", c.bucket.String(), key, err)
		}
	}
	if err := c.fs.WriteFile(path, data, 0o644); err != nil {
		return osserrors.NewObjectError("getFile", c.bucket.String(), key, err)
	}
	return nil
}

// Delete removes an object from the bucket. Deleting a key that does not
// exist is not an error; the service treats the operation as idempotent.
//
// Errors:
//   - ErrInvalidInput: If key is not a valid object path
//   - ErrAccessDenied: If the credentials lack permission to delete
//   - Network errors or service errors wrapped in Error type
//
// Example:
//
//	err := client.Delete(ctx, "old-file.txt")
//	if err != nil {
//	    return fmt.Errorf("failed to delete object: %w", err)
//	}
func (c *Client) Delete(ctx context.Context, key string) error {
	objectPath, err := osstypes.NewObjectPath(key)
	if err != nil {
		return osserrors.NewError("delete", osserrors.ErrInvalidInput).
			WithBucket(c.bucket.String()).
			WithKey(key).
			WithMessage(err.Error())
	}

	req, err := c.newRequest(ctx, http.MethodDelete, objectPath.String(), nil, nil)
	if err != nil {
		return osserrors.NewObjectError("delete", c.bucket.String(), key, err)
	}

	resp, err := c.send(req, signer.CanonicalResource(c.bucket.String(), objectPath.String(), nil))
	if err != nil {
		return osserrors.NewObjectError("delete", c.bucket.String(), key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.logger != nil {
		c.logger.InfoContext(ctx, "delete object",
			"bucket", c.bucket.String(),
			"key", key)
	}

	return nil
}

// Metadata retrieves an object's metadata without downloading the
// content. It issues a HEAD request and maps the response headers.
//
// Returns:
//   - *ObjectMeta: Content type, length, ETag and last modified time
//   - error: Returns an error if the operation fails
//
// Errors:
//   - ErrInvalidInput: If key is not a valid object path
//   - ErrObjectNotFound: If the object doesn't exist
//   - Network errors or service errors wrapped in Error type
func (c *Client) Metadata(ctx context.Context, key string) (*osstypes.ObjectMeta, error) {
	objectPath, err := osstypes.NewObjectPath(key)
	if err != nil {
		return nil, osserrors.NewError("metadata", osserrors.ErrInvalidInput).
			WithBucket(c.bucket.String()).
			WithKey(key).
			WithMessage(err.Error())
	}

	req, err := c.newRequest(ctx, http.MethodHead, objectPath.String(), nil, nil)
	if err != nil {
		return nil, osserrors.NewObjectError("metadata", c.bucket.String(), key, err)
	}

	resp, err := c.send(req, signer.CanonicalResource(c.bucket.String(), objectPath.String(), nil))
	if err != nil {
		return nil, osserrors.NewObjectError("metadata", c.bucket.String(), key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	meta := &osstypes.ObjectMeta{
		ContentType:   resp.Header.Get(headerContentType),
		ContentLength: resp.ContentLength,
		ETag:          strings.Trim(resp.Header.Get(headerETag), `"`),
	}
	if v := resp.Header.Get(headerLastModified); v != "" {
		if t, err := http.ParseTime(v); err == nil {
			meta.LastModified = t
		}
	}
	return meta, nil
}

// Exists reports whether an object exists in the bucket. A missing
// object is not an error; any other failure is.
//
// Example:
//
//	exists, err := client.Exists(ctx, "data.txt")
//	if err != nil {
//	    return fmt.Errorf("failed to check existence: %w", err)
//	}
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	objectPath, err := osstypes.NewObjectPath(key)
	if err != nil {
		return false, osserrors.NewError("exists", osserrors.ErrInvalidInput).
			WithBucket(c.bucket.String()).
			WithKey(key).
			WithMessage(err.Error())
	}

	req, err := c.newRequest(ctx, http.MethodHead, objectPath.String(), nil, nil)
	if err != nil {
		return false, osserrors.NewObjectError("exists", c.bucket.String(), key, err)
	}

	resp, err := c.send(req, signer.CanonicalResource(c.bucket.String(), objectPath.String(), nil))
	if err != nil {
		if errors.Is(err, osserrors.ErrObjectNotFound) {
			return false, nil
		}
		return false, osserrors.NewObjectError("exists", c.bucket.String(), key, err)
	}
	_ = resp.Body.Close()

	return true, nil
}

// ListObjects fetches one page of the bucket's object listing. Results
// are filtered and shaped with ListOption parameters; a non-empty
// NextContinuationToken on the returned page means more results follow.
//
// Use ObjectPager to iterate across pages without manual token
// threading.
//
// Returns:
//   - *ObjectList: One page of objects, common prefixes, and the
//     continuation token for the next page
//   - error: Returns an error if the listing fails
//
// Example:
//
//	page, err := client.ListObjects(ctx,
//	    oss.WithPrefix("photos/"),
//	    oss.WithDelimiter("/"),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, obj := range page.Objects {
//	    fmt.Println(obj.Key, obj.Size)
//	}
func (c *Client) ListObjects(ctx context.Context, opts ...osstypes.ListOption) (*osstypes.ObjectList, error) {
	config := &osstypes.ListOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return c.listObjectsPage(ctx, config, config.ContinuationToken)
}

// listObjectsPage fetches one page of the object listing, resuming at
// cursor when it is non-empty.
func (c *Client) listObjectsPage(ctx context.Context, config *osstypes.ListOptionConfig, cursor string) (*osstypes.ObjectList, error) {
	query := listObjectsQuery(config, cursor)

	req, err := c.newRequest(ctx, http.MethodGet, "", query, nil)
	if err != nil {
		return nil, osserrors.NewBucketError("listObjects", c.bucket.String(), err)
	}

	resp, err := c.send(req, signer.CanonicalResource(c.bucket.String(), "", query))
	if err != nil {
		return nil, osserrors.NewBucketError("listObjects", c.bucket.String(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	var list osstypes.ObjectList
	if err := decode.Objects[*osstypes.Object](resp.Body, &list); err != nil {
		return nil, osserrors.NewBucketError("listObjects", c.bucket.String(), err)
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "list objects",
			"bucket", c.bucket.String(),
			"prefix", config.Prefix,
			"count", len(list.Objects),
			"truncated", list.NextContinuationToken != "")
	}

	return &list, nil
}

// listObjectsQuery renders config as the request query. The list-type
// marker leads so the wire shape matches the v2 listing endpoint.
func listObjectsQuery(config *osstypes.ListOptionConfig, cursor string) *osstypes.Query {
	query := osstypes.NewQuery()
	query.Set(osstypes.QueryKeyListType, "2")
	if config.Prefix != "" {
		query.Set(osstypes.QueryKeyPrefix, config.Prefix)
	}
	if config.Delimiter != "" {
		query.Set(osstypes.QueryKeyDelimiter, config.Delimiter)
	}
	if config.MaxKeys > 0 {
		query.Set(osstypes.QueryKeyMaxKeys, strconv.FormatInt(int64(config.MaxKeys), 10))
	}
	if config.StartAfter != "" {
		query.Set(osstypes.QueryKeyStartAfter, config.StartAfter)
	}
	if config.EncodingType != "" {
		query.Set(osstypes.QueryKeyEncodingType, config.EncodingType)
	}
	if config.FetchOwner {
		query.Set(osstypes.QueryKeyFetchOwner, "true")
	}
	if cursor != "" {
		query.Set(osstypes.QueryKeyContinuationToken, cursor)
	}
	return query
}

// ObjectPager returns a pager over the bucket's object listing. Pages
// are fetched lazily as the iteration consumes them; WithMaxKeys sets
// the page size and WithContinuationToken starts the iteration
// mid-listing.
//
// Example:
//
//	pager := client.ObjectPager(oss.WithPrefix("logs/"))
//	for pager.Next(ctx) {
//	    fmt.Println(pager.Item().Key)
//	}
//	if err := pager.Err(); err != nil {
//	    return err
//	}
func (c *Client) ObjectPager(opts ...osstypes.ListOption) *Pager[osstypes.Object] {
	config := &osstypes.ListOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	return newPager(config.ContinuationToken, func(ctx context.Context, cursor string) ([]osstypes.Object, string, error) {
		page, err := c.listObjectsPage(ctx, config, cursor)
		if err != nil {
			return nil, "", err
		}
		return page.Objects, page.NextContinuationToken, nil
	})
}

// ListBuckets fetches one page of the account's bucket listing. This is
// a service-level call; it ignores the bucket the client is bound to.
// WithPrefix, WithMarker and WithMaxKeys shape the listing; the other
// list options apply only to object listings and are ignored here.
//
// Returns:
//   - *BucketList: One page of buckets plus the marker for the next page
//   - error: Returns an error if the listing fails
func (c *Client) ListBuckets(ctx context.Context, opts ...osstypes.ListOption) (*osstypes.BucketList, error) {
	config := &osstypes.ListOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return c.listBucketsPage(ctx, config, config.Marker)
}

// listBucketsPage fetches one page of the bucket listing, resuming at
// cursor when it is non-empty.
func (c *Client) listBucketsPage(ctx context.Context, config *osstypes.ListOptionConfig, cursor string) (*osstypes.BucketList, error) {
	query := osstypes.NewQuery()
	if config.Prefix != "" {
		query.Set(osstypes.QueryKeyPrefix, config.Prefix)
	}
	if config.MaxKeys > 0 {
		query.Set(osstypes.QueryKeyMaxKeys, strconv.FormatInt(int64(config.MaxKeys), 10))
	}
	if cursor != "" {
		query.Set(osstypes.QueryKeyMarker, cursor)
	}

	req, err := c.newServiceRequest(ctx, http.MethodGet, query)
	if err != nil {
		return nil, osserrors.NewError("listBuckets", err)
	}

	resp, err := c.send(req, signer.CanonicalResource("", "", nil))
	if err != nil {
		return nil, osserrors.NewError("listBuckets", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var list osstypes.BucketList
	if err := decode.Buckets[*osstypes.Bucket](resp.Body, &list); err != nil {
		return nil, osserrors.NewError("listBuckets", err)
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "list buckets",
			"prefix", config.Prefix,
			"count", len(list.Buckets),
			"truncated", list.NextMarker != "")
	}

	return &list, nil
}

// BucketPager returns a pager over the account's bucket listing, the
// service-level counterpart of ObjectPager. WithMarker starts the
// iteration mid-listing.
func (c *Client) BucketPager(opts ...osstypes.ListOption) *Pager[osstypes.Bucket] {
	config := &osstypes.ListOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	return newPager(config.Marker, func(ctx context.Context, cursor string) ([]osstypes.Bucket, string, error) {
		page, err := c.listBucketsPage(ctx, config, cursor)
		if err != nil {
			return nil, "", err
		}
		return page.Buckets, page.NextMarker, nil
	})
}

// BucketInfo retrieves the descriptive record of the bucket the client
// is bound to: name, creation time, region, endpoints and storage class.
//
// Errors:
//   - ErrBucketNotFound: If the bucket doesn't exist
//   - ErrAccessDenied: If the credentials lack permission
//   - Network errors or service errors wrapped in Error type
func (c *Client) BucketInfo(ctx context.Context) (*osstypes.Bucket, error) {
	query := osstypes.NewQuery()
	query.Set(osstypes.QueryKeyBucketInfo, "")

	req, err := c.newRequest(ctx, http.MethodGet, "", query, nil)
	if err != nil {
		return nil, osserrors.NewBucketError("bucketInfo", c.bucket.String(), err)
	}

	resp, err := c.send(req, signer.CanonicalResource(c.bucket.String(), "", query))
	if err != nil {
		return nil, osserrors.NewBucketError("bucketInfo", c.bucket.String(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	var bucket osstypes.Bucket
	if err := decode.BucketInfo(resp.Body, &bucket); err != nil {
		return nil, osserrors.NewBucketError("bucketInfo", c.bucket.String(), err)
	}
	return &bucket, nil
}

// PresignGet builds a pre-signed GET URL for an object, valid for ttl
// from now. Anyone holding the URL can fetch the object until it
// expires, with no further credentials.
//
// Returns:
//   - string: The full URL including the signature parameters
//   - error: Returns an error if key is not a valid object path
//
// Example:
//
//	url, err := client.PresignGet("reports/q3.pdf", 15*time.Minute)
//	if err != nil {
//	    return err
//	}
//	fmt.Println("share this link:", url)
func (c *Client) PresignGet(key string, ttl time.Duration) (string, error) {
	objectPath, err := osstypes.NewObjectPath(key)
	if err != nil {
		return "", osserrors.NewError("presignGet", osserrors.ErrInvalidInput).
			WithBucket(c.bucket.String()).
			WithKey(key).
			WithMessage(err.Error())
	}

	expires := c.now().Add(ttl)
	resource := signer.CanonicalResource(c.bucket.String(), objectPath.String(), nil)
	values := c.signer.Presign(resource, expires)

	return c.requestURL(false, objectPath.String(), nil) + "?" + values.Encode(), nil
}

// detectContentType determines the content type for an upload by
// sniffing the payload, then falling back to the file extension.
func detectContentType(name string, data []byte) string {
	if len(data) > 0 {
		sample := data
		if len(sample) > sniffLen {
			sample = sample[:sniffLen]
		}
		if mtype := mimetype.Detect(sample); mtype != nil {
			detected := mtype.String()
			// The sniffer answers octet-stream for anything it cannot
			// classify; prefer the extension in that case.
			if detected != DefaultContentType {
				return detected
			}
		}
	}
	return detectContentTypeFromExtension(name)
}

// detectContentTypeFromExtension maps the file extension to a MIME type,
// defaulting to application/octet-stream for unknown extensions.
func detectContentTypeFromExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return DefaultContentType
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}
	return DefaultContentType
}
