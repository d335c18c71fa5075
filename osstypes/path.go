package osstypes

import (
	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/internal/validation"
)

// BucketName is a validated OSS bucket name. The zero value is unset;
// values only come from NewBucketName, so a BucketName in hand is always
// well formed.
type BucketName struct {
	name string
}

// NewBucketName validates name and wraps it.
func NewBucketName(name string) (BucketName, error) {
	if err := validation.ValidateBucketName(name); err != nil {
		return BucketName{}, err
	}
	return BucketName{name: name}, nil
}

// String returns the raw bucket name.
func (b BucketName) String() string { return b.name }

// IsZero reports whether the name is unset.
func (b BucketName) IsZero() bool { return b.name == "" }

// ObjectPath is a validated object path (key) within a bucket.
type ObjectPath struct {
	path string
}

// NewObjectPath validates path and wraps it.
func NewObjectPath(path string) (ObjectPath, error) {
	if err := validation.ValidateObjectPath(path); err != nil {
		return ObjectPath{}, err
	}
	return ObjectPath{path: path}, nil
}

// String returns the raw object path.
func (p ObjectPath) String() string { return p.path }

// IsZero reports whether the path is unset.
func (p ObjectPath) IsZero() bool { return p.path == "" }

// ObjectDir is a validated directory prefix within a bucket, always
// ending in a slash.
type ObjectDir struct {
	dir string
}

// NewObjectDir validates dir and wraps it.
func NewObjectDir(dir string) (ObjectDir, error) {
	if err := validation.ValidateObjectDir(dir); err != nil {
		return ObjectDir{}, err
	}
	return ObjectDir{dir: dir}, nil
}

// String returns the raw directory prefix.
func (d ObjectDir) String() string { return d.dir }

// IsZero reports whether the prefix is unset.
func (d ObjectDir) IsZero() bool { return d.dir == "" }
