// Package oss provides client initialization and configuration.
//
// The Client provides a high-level interface for interacting with Aliyun
// OSS, supporting operations like upload, download, list, and delete with
// configurable options for transport, logging, and filesystem access.
package oss

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	osserrors "github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/internal/signer"
	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/osstypes"
)

const (
	// defaultTimeout bounds each request when no custom HTTP client is
	// supplied.
	defaultTimeout = 60 * time.Second

	// maxErrorBody caps how much of an error response is read when
	// building a ServiceError.
	maxErrorBody = 64 << 10
)

// Client represents an OSS client bound to a single bucket and endpoint.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	// endpoint is the region endpoint the client talks to
	endpoint osstypes.EndPoint

	// bucket is the bucket all object operations apply to
	bucket osstypes.BucketName

	// baseURL, when set, overrides the endpoint-derived service URL
	baseURL *url.URL

	// httpClient executes the requests
	httpClient *http.Client

	// signer computes request authorization
	signer *signer.Signer

	// logger records operations when configured (nil disables logging)
	logger *slog.Logger

	// fs is the filesystem abstraction for file operations
	fs fs.Filesystem

	// detect decides the content type of uploads
	detect osstypes.ContentTypeDetector

	// now supplies the timestamp stamped into the Date header
	now func() time.Time
}

// New creates a new OSS client from cfg with the provided options.
// The access key pair, endpoint, and bucket name are validated before
// any request is made.
//
// Example:
//
//	client, err := oss.New(oss.Config{
//	    AccessKeyID:     os.Getenv("ALIYUN_KEY_ID"),
//	    AccessKeySecret: os.Getenv("ALIYUN_KEY_SECRET"),
//	    EndPoint:        "cn-qingdao",
//	    Bucket:          "my-bucket",
//	}, oss.WithTimeout(30*time.Second))
func New(cfg Config, opts ...osstypes.Option) (*Client, error) {
	creds, err := cfg.credentials()
	if err != nil {
		return nil, err
	}

	endpoint, err := cfg.endpoint()
	if err != nil {
		return nil, err
	}

	bucket, err := osstypes.NewBucketName(cfg.Bucket)
	if err != nil {
		return nil, err
	}

	clientCfg := &osstypes.ClientConfig{
		Timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(clientCfg)
	}

	httpClient := clientCfg.CustomHTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: clientCfg.Timeout}
	}

	filesystem := clientCfg.Filesystem
	if filesystem == nil {
		// Default to OS filesystem rooted at /
		filesystem = billy.NewOSFS("/")
	}

	detector := clientCfg.ContentTypeDetector
	if detector == nil {
		detector = detectContentType
	}

	var baseURL *url.URL
	if clientCfg.BaseURL != "" {
		baseURL, err = url.Parse(clientCfg.BaseURL)
		if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
			return nil, osserrors.NewError("client initialization", osserrors.ErrInvalidEndpoint).
				WithMessage(fmt.Sprintf("base URL %q is not an absolute URL", clientCfg.BaseURL))
		}
	}

	return &Client{
		endpoint:   endpoint,
		bucket:     bucket,
		baseURL:    baseURL,
		httpClient: httpClient,
		signer:     signer.New(creds),
		logger:     clientCfg.Logger,
		fs:         filesystem,
		detect:     detector,
		now:        time.Now,
	}, nil
}

// NewFromEnv creates a new OSS client configured from the ALIYUN_*
// environment variables. See FromEnv for the variables read.
func NewFromEnv(opts ...osstypes.Option) (*Client, error) {
	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Bucket returns the name of the bucket the client is bound to.
func (c *Client) Bucket() string {
	return c.bucket.String()
}

// EndPoint returns the endpoint the client talks to.
func (c *Client) EndPoint() osstypes.EndPoint {
	return c.endpoint
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// requestURL assembles the URL for a request. Object operations use the
// virtual-hosted style, with the bucket as a subdomain of the endpoint;
// service-level operations address the endpoint directly. The object
// path is escaped per segment so slashes keep their meaning, and the
// query string preserves its insertion order.
func (c *Client) requestURL(serviceLevel bool, object string, query *osstypes.Query) string {
	u := url.URL{Scheme: "https"}

	switch {
	case c.baseURL != nil:
		u.Scheme = c.baseURL.Scheme
		u.Host = c.baseURL.Host
	case serviceLevel:
		u.Host = c.endpoint.Host()
	default:
		u.Host = c.bucket.String() + "." + c.endpoint.Host()
	}

	u.Path = "/" + object
	if query != nil && query.Len() > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// newRequest builds an unsigned request for an object or bucket-level
// operation. Callers set any additional headers and then pass the
// request through send, which signs it.
func (c *Client) newRequest(ctx context.Context, method, object string, query *osstypes.Query, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(false, object, query), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}

// newServiceRequest builds an unsigned request addressed to the service
// endpoint rather than the bucket.
func (c *Client) newServiceRequest(ctx context.Context, method string, query *osstypes.Query) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(true, "", query), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}

// send signs req against the canonicalized resource and executes it.
// Responses other than 200, 204, and 206 are drained and converted into
// a *errors.ServiceError.
func (c *Client) send(req *http.Request, resource string) (*http.Response, error) {
	c.signer.Sign(req, resource, c.now())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusPartialContent:
		return resp, nil
	}

	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, osserrors.ParseService(resp.StatusCode, nil)
	}
	return nil, osserrors.ParseService(resp.StatusCode, raw)
}
