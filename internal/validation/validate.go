package validation

import (
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/errors"
)

// reservedEndpointPrefix is the provider's own hostname prefix; a custom
// region must not carry it or the derived host would collide with the
// provider's namespace.
const reservedEndpointPrefix = "oss"

// ValidateBucketName validates that a bucket name is DNS-compliant
// according to OSS rules. Returns ErrInvalidBucketName if the bucket name
// is invalid.
func ValidateBucketName(bucket string) error {
	if bucket == "" {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage("bucket name cannot be empty")
	}

	// Bucket names must be between 3 and 63 characters long
	if len(bucket) < 3 || len(bucket) > 63 {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage("bucket name must be between 3 and 63 characters long")
	}

	// Bucket names can consist only of lowercase letters, numbers, and hyphens
	for _, char := range bucket {
		if !isValidBucketChar(char) {
			return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
				WithBucket(bucket).
				WithMessage("bucket name can only contain lowercase letters, numbers, and hyphens")
		}
	}

	// Bucket names must not start or end with a hyphen
	if bucket[0] == '-' || bucket[len(bucket)-1] == '-' {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage("bucket name cannot start or end with a hyphen")
	}

	return nil
}

// ValidateRegion validates a custom region identifier used to build the
// service host. Known regions bypass this check; it applies to the
// free-form variant only. Returns ErrInvalidEndpoint if the region is
// invalid.
func ValidateRegion(region string) error {
	if region == "" {
		return errors.NewError("validateRegion", errors.ErrInvalidEndpoint).
			WithMessage("region cannot be empty")
	}

	if strings.HasPrefix(region, "-") || strings.HasSuffix(region, "-") {
		return errors.NewError("validateRegion", errors.ErrInvalidEndpoint).
			WithMessage("region cannot start or end with a hyphen")
	}

	// A custom region becomes part of the host as oss-{region}; a region
	// that itself starts with the provider prefix would double it.
	if strings.HasPrefix(region, reservedEndpointPrefix) {
		return errors.NewError("validateRegion", errors.ErrInvalidEndpoint).
			WithMessage("region cannot start with the reserved prefix \"oss\"")
	}

	for _, char := range region {
		if !isValidRegionChar(char) {
			return errors.NewError("validateRegion", errors.ErrInvalidEndpoint).
				WithMessage("region can only contain lowercase letters, numbers, and hyphens")
		}
	}

	return nil
}

// ValidateObjectPath validates that an object path is well formed: it must
// be non-empty, relative, and name a file rather than a directory.
// Returns ErrInvalidObjectPath if the path is invalid.
func ValidateObjectPath(path string) error {
	if path == "" {
		return errors.NewError("validateObjectPath", errors.ErrInvalidObjectPath).
			WithKey(path).
			WithMessage("object path cannot be empty")
	}

	if strings.HasPrefix(path, "/") {
		return errors.NewError("validateObjectPath", errors.ErrInvalidObjectPath).
			WithKey(path).
			WithMessage("object path cannot start with a slash")
	}

	if strings.HasPrefix(path, ".") {
		return errors.NewError("validateObjectPath", errors.ErrInvalidObjectPath).
			WithKey(path).
			WithMessage("object path cannot start with a dot")
	}

	if strings.HasSuffix(path, "/") {
		return errors.NewError("validateObjectPath", errors.ErrInvalidObjectPath).
			WithKey(path).
			WithMessage("object path cannot end with a slash")
	}

	if strings.Contains(path, `\`) {
		return errors.NewError("validateObjectPath", errors.ErrInvalidObjectPath).
			WithKey(path).
			WithMessage("object path cannot contain backslashes")
	}

	return nil
}

// ValidateObjectDir validates a directory prefix used for listings. The
// same rules as object paths apply except that a directory must end with
// a slash. Returns ErrInvalidObjectPath if the prefix is invalid.
func ValidateObjectDir(dir string) error {
	if dir == "" {
		return errors.NewError("validateObjectDir", errors.ErrInvalidObjectPath).
			WithKey(dir).
			WithMessage("object dir cannot be empty")
	}

	if strings.HasPrefix(dir, "/") {
		return errors.NewError("validateObjectDir", errors.ErrInvalidObjectPath).
			WithKey(dir).
			WithMessage("object dir cannot start with a slash")
	}

	if strings.HasPrefix(dir, ".") {
		return errors.NewError("validateObjectDir", errors.ErrInvalidObjectPath).
			WithKey(dir).
			WithMessage("object dir cannot start with a dot")
	}

	if !strings.HasSuffix(dir, "/") {
		return errors.NewError("validateObjectDir", errors.ErrInvalidObjectPath).
			WithKey(dir).
			WithMessage("object dir must end with a slash")
	}

	if strings.Contains(dir, `\`) {
		return errors.NewError("validateObjectDir", errors.ErrInvalidObjectPath).
			WithKey(dir).
			WithMessage("object dir cannot contain backslashes")
	}

	return nil
}

// ValidateAccessKey validates that a credential pair is present. The
// service decides whether the pair is actually valid; construction only
// rejects values that could never sign a request.
func ValidateAccessKey(id, secret string) error {
	if id == "" {
		return errors.NewError("validateAccessKey", errors.ErrInvalidAccessKey).
			WithMessage("access key id cannot be empty")
	}
	if secret == "" {
		return errors.NewError("validateAccessKey", errors.ErrInvalidAccessKey).
			WithMessage("access key secret cannot be empty")
	}
	return nil
}

// isValidBucketChar checks if a character is valid in a bucket name
func isValidBucketChar(char rune) bool {
	return (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z') || char == '-'
}

// isValidRegionChar checks if a character is valid in a region identifier
func isValidRegionChar(char rune) bool {
	return (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z') || char == '-'
}
