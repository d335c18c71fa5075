package osstypes

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // the signing protocol mandates HMAC-SHA1
	"encoding/base64"
	"log/slog"

	osserrors "github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/internal/validation"
)

// redacted replaces secret material in every printed representation.
const redacted = "******"

// Secret holds an access key secret. The raw value is unexported and all
// printed forms are redacted; the only way the secret leaves the type is
// as a signature over caller-supplied bytes.
type Secret struct {
	value string
}

// NewSecret wraps a raw access key secret.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Sign computes the base64-encoded HMAC-SHA1 signature of data keyed by
// the secret.
func (s Secret) Sign(data []byte) string {
	mac := hmac.New(sha1.New, []byte(s.value))
	mac.Write(data)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool {
	return s.value == ""
}

// String implements fmt.Stringer. The value is redacted.
func (s Secret) String() string {
	return redacted
}

// GoString implements fmt.GoStringer so %#v does not leak the value.
func (s Secret) GoString() string {
	return redacted
}

// LogValue implements slog.LogValuer so structured logs never carry the
// value.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// Credentials is an access key pair, optionally extended with an STS
// security token.
type Credentials struct {
	// AccessKeyID identifies the key pair
	AccessKeyID string

	// AccessKeySecret signs requests; it is redacted in all printed forms
	AccessKeySecret Secret

	// SecurityToken is the optional STS session token. When set it is
	// sent with every request and participates in signing.
	SecurityToken string
}

// NewCredentials builds a validated static key pair.
func NewCredentials(id, secret string) (Credentials, error) {
	if err := validation.ValidateAccessKey(id, secret); err != nil {
		return Credentials{}, err
	}
	return Credentials{AccessKeyID: id, AccessKeySecret: NewSecret(secret)}, nil
}

// NewCredentialsWithToken builds a validated key pair carrying an STS
// session token.
func NewCredentialsWithToken(id, secret, token string) (Credentials, error) {
	creds, err := NewCredentials(id, secret)
	if err != nil {
		return Credentials{}, err
	}
	if token == "" {
		return Credentials{}, osserrors.NewError("newCredentialsWithToken", osserrors.ErrInvalidAccessKey).
			WithMessage("security token cannot be empty")
	}
	creds.SecurityToken = token
	return creds, nil
}
