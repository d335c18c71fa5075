package oss

import (
	"os"
	"strconv"

	osserrors "github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/osstypes"
)

// Environment variables read by FromEnv.
const (
	EnvKeyID         = "ALIYUN_KEY_ID"
	EnvKeySecret     = "ALIYUN_KEY_SECRET"
	EnvEndPoint      = "ALIYUN_ENDPOINT"
	EnvBucket        = "ALIYUN_BUCKET"
	EnvSecurityToken = "ALIYUN_SECURITY_TOKEN"
	EnvInternal      = "ALIYUN_OSS_INTERNAL"
)

// Config carries the static settings a Client is built from. All fields
// are validated during New; a Config itself performs no validation.
type Config struct {
	// AccessKeyID identifies the Aliyun key pair.
	AccessKeyID string

	// AccessKeySecret is the signing secret paired with AccessKeyID.
	AccessKeySecret string

	// SecurityToken is an optional STS session token. When set it is
	// attached to every signed request.
	SecurityToken string

	// EndPoint names the region the client talks to. It accepts a full
	// region identifier ("cn-qingdao"), a short alias ("qingdao"), or a
	// custom region name.
	EndPoint string

	// Bucket is the bucket all object operations apply to.
	Bucket string

	// Internal routes requests over the VPC-internal endpoint instead
	// of the public one.
	Internal bool
}

// FromEnv builds a Config from the ALIYUN_* environment variables.
//
// ALIYUN_KEY_ID, ALIYUN_KEY_SECRET, ALIYUN_ENDPOINT and ALIYUN_BUCKET
// are required. ALIYUN_SECURITY_TOKEN and ALIYUN_OSS_INTERNAL are
// optional; ALIYUN_OSS_INTERNAL accepts the strconv.ParseBool forms
// ("1", "true", "f", ...).
func FromEnv() (Config, error) {
	cfg := Config{
		AccessKeyID:     os.Getenv(EnvKeyID),
		AccessKeySecret: os.Getenv(EnvKeySecret),
		SecurityToken:   os.Getenv(EnvSecurityToken),
		EndPoint:        os.Getenv(EnvEndPoint),
		Bucket:          os.Getenv(EnvBucket),
	}

	if raw := os.Getenv(EnvInternal); raw != "" {
		internal, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, osserrors.NewError("fromEnv", osserrors.ErrInvalidEndpoint).
				WithMessage(EnvInternal + " must be a boolean value")
		}
		cfg.Internal = internal
	}

	if cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" {
		return Config{}, osserrors.NewError("fromEnv", osserrors.ErrInvalidAccessKey).
			WithMessage(EnvKeyID + " and " + EnvKeySecret + " must be set")
	}
	if cfg.EndPoint == "" {
		return Config{}, osserrors.NewError("fromEnv", osserrors.ErrInvalidEndpoint).
			WithMessage(EnvEndPoint + " must be set")
	}
	if cfg.Bucket == "" {
		return Config{}, osserrors.NewError("fromEnv", osserrors.ErrInvalidBucketName).
			WithMessage(EnvBucket + " must be set")
	}

	return cfg, nil
}

// credentials builds validated credentials from the config.
func (c Config) credentials() (osstypes.Credentials, error) {
	if c.SecurityToken != "" {
		return osstypes.NewCredentialsWithToken(c.AccessKeyID, c.AccessKeySecret, c.SecurityToken)
	}
	return osstypes.NewCredentials(c.AccessKeyID, c.AccessKeySecret)
}

// endpoint builds the validated endpoint from the config.
func (c Config) endpoint() (osstypes.EndPoint, error) {
	if c.Internal {
		return osstypes.NewInternalEndPoint(c.EndPoint)
	}
	return osstypes.NewEndPoint(c.EndPoint)
}
