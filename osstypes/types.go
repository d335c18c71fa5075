// Package osstypes provides shared type definitions for the OSS module.
package osstypes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/decode"
)

// StorageClass represents the OSS storage class for objects and buckets.
type StorageClass string

// Predefined OSS storage classes
const (
	// StorageClassStandard is the default OSS storage class
	StorageClassStandard StorageClass = "Standard"

	// StorageClassIA provides infrequent access storage
	StorageClassIA StorageClass = "IA"

	// StorageClassArchive provides archival storage
	StorageClassArchive StorageClass = "Archive"

	// StorageClassColdArchive provides cold archival storage
	StorageClassColdArchive StorageClass = "ColdArchive"
)

// Object represents an OSS object with its listing metadata.
type Object struct {
	// Key is the object path within the bucket
	Key string

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the entity tag for the object, without surrounding quotes
	ETag string

	// Type is the object type (Normal, Appendable, Multipart)
	Type string

	// Size is the object size in bytes
	Size int64

	// StorageClass is the OSS storage class
	StorageClass StorageClass
}

// SetField assigns one decoded listing field to the object. It implements
// decode.Item.
func (o *Object) SetField(name, value string) error {
	switch name {
	case decode.TagKey:
		o.Key = value
	case decode.TagLastModified:
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		o.LastModified = t
	case decode.TagETag:
		o.ETag = value
	case decode.TagType:
		o.Type = value
	case decode.TagSize:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		o.Size = n
	case decode.TagStorageClass:
		o.StorageClass = StorageClass(value)
	}
	return nil
}

// ObjectList is one page of an object listing.
type ObjectList struct {
	// Name is the bucket that was listed
	Name string

	// Prefix is the prefix the listing was restricted to
	Prefix string

	// MaxKeys is the page size the service applied
	MaxKeys int32

	// KeyCount is the number of keys returned in this page
	KeyCount int

	// Objects contains the returned objects
	Objects []Object

	// CommonPrefixes contains the grouped prefixes when a delimiter was set
	CommonPrefixes []string

	// NextContinuationToken resumes the listing on the next page; empty
	// means the listing is complete
	NextContinuationToken string
}

// NewItem returns a destination for the next object in the page. It
// implements decode.ObjectList.
func (l *ObjectList) NewItem() *Object { return &Object{} }

// SetField assigns one decoded listing-level field.
func (l *ObjectList) SetField(name, value string) error {
	switch name {
	case decode.TagName:
		l.Name = value
	case decode.TagPrefix:
		l.Prefix = value
	case decode.TagMaxKeys:
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		l.MaxKeys = int32(n)
	case decode.TagKeyCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		l.KeyCount = n
	}
	return nil
}

// SetCommonPrefixes appends the prefixes of one CommonPrefixes block.
func (l *ObjectList) SetCommonPrefixes(prefixes []string) error {
	l.CommonPrefixes = append(l.CommonPrefixes, prefixes...)
	return nil
}

// SetCursor stores the continuation token for the next page.
func (l *ObjectList) SetCursor(token string) error {
	l.NextContinuationToken = token
	return nil
}

// SetItems stores the decoded objects.
func (l *ObjectList) SetItems(items []*Object) error {
	l.Objects = make([]Object, 0, len(items))
	for _, item := range items {
		l.Objects = append(l.Objects, *item)
	}
	return nil
}

// Bucket represents an OSS bucket and its location endpoints.
type Bucket struct {
	// Name is the bucket name
	Name string

	// CreationDate is when the bucket was created
	CreationDate time.Time

	// Location is the bucket's data center, e.g. "oss-cn-hangzhou"
	Location string

	// ExtranetEndpoint is the public service hostname for the bucket
	ExtranetEndpoint string

	// IntranetEndpoint is the VPC-internal service hostname
	IntranetEndpoint string

	// StorageClass is the bucket's default storage class
	StorageClass StorageClass
}

// SetField assigns one decoded bucket field. It implements decode.Item.
func (b *Bucket) SetField(name, value string) error {
	switch name {
	case decode.TagName:
		b.Name = value
	case decode.TagCreationDate:
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		b.CreationDate = t
	case decode.TagLocation:
		b.Location = value
	case decode.TagExtranetEndpoint:
		b.ExtranetEndpoint = value
	case decode.TagIntranetEndpoint:
		b.IntranetEndpoint = value
	case decode.TagStorageClass:
		b.StorageClass = StorageClass(value)
	}
	return nil
}

// BucketList is one page of a bucket listing.
type BucketList struct {
	// Prefix is the prefix the listing was restricted to
	Prefix string

	// Marker is the marker the page started after
	Marker string

	// MaxKeys is the page size the service applied
	MaxKeys int32

	// IsTruncated indicates more buckets follow this page
	IsTruncated bool

	// OwnerID is the account id that owns the buckets
	OwnerID string

	// OwnerDisplayName is the display name of the owning account
	OwnerDisplayName string

	// Buckets contains the returned buckets
	Buckets []Bucket

	// NextMarker resumes the listing on the next page; empty means the
	// listing is complete
	NextMarker string
}

// NewItem returns a destination for the next bucket in the page. It
// implements decode.BucketList.
func (l *BucketList) NewItem() *Bucket { return &Bucket{} }

// SetField assigns one decoded listing-level field.
func (l *BucketList) SetField(name, value string) error {
	switch name {
	case decode.TagPrefix:
		l.Prefix = value
	case decode.TagMarker:
		l.Marker = value
	case decode.TagMaxKeys:
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		l.MaxKeys = int32(n)
	case decode.TagIsTruncated:
		l.IsTruncated = value == "true"
	case decode.TagID:
		l.OwnerID = value
	case decode.TagDisplayName:
		l.OwnerDisplayName = value
	}
	return nil
}

// SetCursor stores the marker for the next page.
func (l *BucketList) SetCursor(token string) error {
	l.NextMarker = token
	return nil
}

// SetItems stores the decoded buckets.
func (l *BucketList) SetItems(items []*Bucket) error {
	l.Buckets = make([]Bucket, 0, len(items))
	for _, item := range items {
		l.Buckets = append(l.Buckets, *item)
	}
	return nil
}

// ObjectMeta contains the header metadata of a single object.
type ObjectMeta struct {
	// ContentType is the MIME type of the object
	ContentType string

	// ContentLength is the size of the object in bytes
	ContentLength int64

	// ETag is the entity tag for the object, without surrounding quotes
	ETag string

	// LastModified is when the object was last modified
	LastModified time.Time
}

// Configuration types for functional options

// ContentTypeDetector decides the Content-Type for an upload from the
// file name and payload. The name may be an object key or a local path;
// either or both inputs may be empty.
type ContentTypeDetector func(name string, data []byte) string

// ClientConfig holds configuration for the OSS client.
type ClientConfig struct {
	Timeout             time.Duration
	CustomHTTPClient    *http.Client
	Logger              *slog.Logger
	Filesystem          fs.Filesystem // Filesystem abstraction for file operations
	BaseURL             string        // overrides the endpoint-derived service URL
	ContentTypeDetector ContentTypeDetector
}

// UploadOptionConfig holds configuration for upload operations via functional options.
type UploadOptionConfig struct {
	ContentType  string
	StorageClass StorageClass
}

// Range selects an inclusive byte range of an object, as in the HTTP
// Range header. An End below zero reads through the end of the object.
type Range struct {
	Start int64
	End   int64
}

// Spec renders the range as a Range header value.
func (r Range) Spec() string {
	if r.End < 0 {
		return fmt.Sprintf("bytes=%d-", r.Start)
	}
	return fmt.Sprintf("bytes=%d-%d", r.Start, r.End)
}

// DownloadOptionConfig holds configuration for download operations via functional options.
type DownloadOptionConfig struct {
	RangeSpec string // renamed from "range" to avoid Go keyword conflict
}

// ListOptionConfig holds configuration for list operations via functional options.
type ListOptionConfig struct {
	Prefix            string
	Delimiter         string
	MaxKeys           int32
	StartAfter        string
	ContinuationToken string
	EncodingType      string
	FetchOwner        bool
	Marker            string // bucket listings page by marker rather than token
}

// Option is a functional option for configuring the OSS client.
type (
	Option func(*ClientConfig)
	// UploadOption is a functional option for configuring upload operations.
	UploadOption func(*UploadOptionConfig)
	// DownloadOption is a functional option for configuring download operations.
	DownloadOption func(*DownloadOptionConfig)
	// ListOption is a functional option for configuring list operations.
	ListOption func(*ListOptionConfig)
)
