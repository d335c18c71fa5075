// Package errors provides error types and handling for Aliyun OSS operations.
package errors

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents an OSS operation error with context about the operation
// that failed. It wraps the underlying cause with additional context for
// better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "put", "get", "listObjects")
	Op string

	// Bucket is the OSS bucket name (if applicable)
	Bucket string

	// Key is the object path (if applicable)
	Key string

	// Err is the underlying error from the service, transport, or decoder
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("oss.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("oss.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("oss.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("oss.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object path context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Err:    err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for common OSS operation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidBucketName indicates that a bucket name failed construction
	// rules (3-63 chars, lowercase letters/digits/hyphen, no leading or
	// trailing hyphen).
	ErrInvalidBucketName = errors.New("oss: invalid bucket name")

	// ErrInvalidEndpoint indicates that an endpoint is neither a known
	// region nor a well-formed custom region identifier.
	ErrInvalidEndpoint = errors.New("oss: invalid endpoint")

	// ErrInvalidObjectPath indicates that an object path failed construction
	// rules (non-empty, no leading slash or dot, no trailing slash).
	ErrInvalidObjectPath = errors.New("oss: invalid object path")

	// ErrInvalidAccessKey indicates missing or malformed credentials.
	ErrInvalidAccessKey = errors.New("oss: invalid access key")

	// ErrInvalidInput indicates that the provided input is invalid.
	ErrInvalidInput = errors.New("oss: invalid input")

	// ErrObjectNotFound indicates that the requested object does not exist.
	ErrObjectNotFound = errors.New("oss: object not found")

	// ErrBucketNotFound indicates that the requested bucket does not exist.
	ErrBucketNotFound = errors.New("oss: bucket not found")

	// ErrAccessDenied indicates that access to the resource is denied.
	ErrAccessDenied = errors.New("oss: access denied")

	// ErrSignatureMismatch indicates the service rejected the computed
	// request signature.
	ErrSignatureMismatch = errors.New("oss: signature mismatch")

	// ErrInvalidCredentials indicates the access key id is unknown to the
	// service.
	ErrInvalidCredentials = errors.New("oss: invalid credentials")
)

// IsConfig reports whether an error belongs to the construction-time
// validation class. Such errors are produced before any request is built.
func IsConfig(err error) bool {
	return errors.Is(err, ErrInvalidBucketName) ||
		errors.Is(err, ErrInvalidEndpoint) ||
		errors.Is(err, ErrInvalidObjectPath) ||
		errors.Is(err, ErrInvalidAccessKey)
}

// IsNotFound checks if an error indicates that an object or bucket was not
// found. This is a convenience function that handles both sentinel errors
// and wrapped errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound) || errors.Is(err, ErrBucketNotFound)
}

// IsAccessDenied checks if an error indicates access was denied.
// This is a convenience function that handles both sentinel errors and
// wrapped errors.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsInvalidInput checks if an error indicates invalid input.
// This is a convenience function that handles both sentinel errors and
// wrapped errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// excerptLimit bounds how much raw input a DecodeError carries.
const excerptLimit = 64

// DecodeError reports a failure while decoding a service XML response.
// It names the offending tag and carries a bounded excerpt of the raw
// input for diagnosis.
type DecodeError struct {
	// Tag is the XML element being processed when the failure occurred,
	// empty when the document itself could not be tokenized.
	Tag string

	// Excerpt is a bounded slice of the raw input near the failure.
	Excerpt string

	// Err is the underlying cause (a syntax error or a field conversion
	// failure reported by the target type).
	Err error
}

// NewDecodeError builds a DecodeError for the given tag, bounding the raw
// excerpt to a fixed length.
func NewDecodeError(tag string, raw []byte, err error) *DecodeError {
	excerpt := string(raw)
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit]
	}
	return &DecodeError{Tag: tag, Excerpt: excerpt, Err: err}
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("oss: decode")
	if e.Tag != "" {
		fmt.Fprintf(&b, " <%s>", e.Tag)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if e.Excerpt != "" {
		fmt.Fprintf(&b, " (near %q)", e.Excerpt)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ServiceError is a structured non-2xx response from the service. Code,
// Message and RequestID come from the provider's <Error> body when that
// body is valid XML; otherwise only StatusCode is populated.
type ServiceError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Code is the provider error code, e.g. "NoSuchKey".
	Code string

	// Message is the provider's human-readable description.
	Message string

	// RequestID identifies the failed request on the provider side.
	RequestID string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("oss: service error %s: %s (status %d, request %s)",
			e.Code, e.Message, e.StatusCode, e.RequestID)
	}
	return fmt.Sprintf("oss: service error: status %d", e.StatusCode)
}

// Is maps well-known provider codes onto the package sentinels so callers
// can test with errors.Is without inspecting codes themselves. Responses
// without an error document, such as a failed HEAD, are matched on the
// HTTP status instead.
func (e *ServiceError) Is(target error) bool {
	if e.Code == "" {
		switch target {
		case ErrObjectNotFound:
			return e.StatusCode == http.StatusNotFound
		case ErrAccessDenied:
			return e.StatusCode == http.StatusForbidden
		}
		return false
	}
	switch target {
	case ErrObjectNotFound:
		return e.Code == "NoSuchKey"
	case ErrBucketNotFound:
		return e.Code == "NoSuchBucket"
	case ErrAccessDenied:
		return e.Code == "AccessDenied"
	case ErrSignatureMismatch:
		return e.Code == "SignatureDoesNotMatch"
	case ErrInvalidCredentials:
		return e.Code == "InvalidAccessKeyId"
	}
	return false
}

// serviceBody mirrors the provider's error document.
type serviceBody struct {
	XMLName   xml.Name `xml:"Error"`
	Code      string   `xml:"Code"`
	Message   string   `xml:"Message"`
	RequestID string   `xml:"RequestId"`
}

// ParseService builds a ServiceError from a non-2xx response body. A body
// that is not the provider's XML error document yields the raw-status
// fallback rather than a parse failure.
func ParseService(statusCode int, body []byte) *ServiceError {
	var parsed serviceBody
	if err := xml.Unmarshal(body, &parsed); err != nil || parsed.Code == "" {
		return &ServiceError{StatusCode: statusCode}
	}
	return &ServiceError{
		StatusCode: statusCode,
		Code:       parsed.Code,
		Message:    parsed.Message,
		RequestID:  parsed.RequestID,
	}
}
