// Package signer implements the service's header and query signing
// protocol: HMAC-SHA1 over a canonical form of the request, presented
// either as an Authorization header or as presigned URL parameters.
package signer

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/osstypes"
)

const (
	// HeaderSecurityToken carries the STS session token. Its x-oss-
	// prefix makes it part of the canonicalized headers, so a tampered
	// token invalidates the signature.
	HeaderSecurityToken = "x-oss-security-token"

	// ossHeaderPrefix marks the headers that participate in signing.
	ossHeaderPrefix = "x-oss-"

	// authScheme prefixes the Authorization header value.
	authScheme = "OSS"
)

// Presigned URL parameter names.
const (
	queryAccessKeyID = "OSSAccessKeyId"
	queryExpires     = "Expires"
	querySignature   = "Signature"
)

// Signer computes request signatures for one set of credentials.
type Signer struct {
	creds osstypes.Credentials
}

// New returns a Signer for creds.
func New(creds osstypes.Credentials) *Signer {
	return &Signer{creds: creds}
}

// Sign authorizes req in place. It stamps the Date header from now, adds
// the security token header when the credentials carry one, and sets the
// Authorization header over the canonical form of the request.
//
// The token header is set before the canonical headers are collected so
// that it participates in the signature.
func (s *Signer) Sign(req *http.Request, resource string, now time.Time) {
	req.Header.Set("Date", now.UTC().Format(http.TimeFormat))
	if s.creds.SecurityToken != "" {
		req.Header.Set(HeaderSecurityToken, s.creds.SecurityToken)
	}

	str := SigningString(
		req.Method,
		req.Header.Get("Content-MD5"),
		req.Header.Get("Content-Type"),
		req.Header.Get("Date"),
		CanonicalHeaders(req.Header),
		resource,
	)
	sig := s.creds.AccessKeySecret.Sign([]byte(str))
	req.Header.Set("Authorization", Authorization(s.creds.AccessKeyID, sig))
}

// Presign returns the query parameters that authorize a plain GET of
// resource until expires. The signature covers the verb, the expiry
// timestamp and the canonicalized resource.
func (s *Signer) Presign(resource string, expires time.Time) url.Values {
	exp := strconv.FormatInt(expires.Unix(), 10)
	str := "GET\n\n\n" + exp + "\n" + resource
	sig := s.creds.AccessKeySecret.Sign([]byte(str))

	v := url.Values{}
	v.Set(queryAccessKeyID, s.creds.AccessKeyID)
	v.Set(queryExpires, exp)
	v.Set(querySignature, sig)
	return v
}

// Authorization renders the Authorization header value for an access key
// id and a computed signature.
func Authorization(id, signature string) string {
	return authScheme + " " + id + ":" + signature
}

// SigningString assembles the string that is signed for header
// authorization. canonicalHeaders must be empty or end in a newline;
// resource is the canonicalized resource.
func SigningString(verb, contentMD5, contentType, date, canonicalHeaders, resource string) string {
	return verb + "\n" + contentMD5 + "\n" + contentType + "\n" + date + "\n" + canonicalHeaders + resource
}

// CanonicalHeaders collects the x-oss- prefixed headers of h in
// canonical form: names lower-cased, one name:value line per header,
// sorted by name. For repeated headers the last value wins. The result
// is empty when no such headers exist; otherwise every line ends in a
// newline.
func CanonicalHeaders(h http.Header) string {
	names := make([]string, 0, len(h))
	values := make(map[string]string, len(h))
	for name, vals := range h {
		ln := strings.ToLower(name)
		if !strings.HasPrefix(ln, ossHeaderPrefix) || len(vals) == 0 {
			continue
		}
		if _, seen := values[ln]; !seen {
			names = append(names, ln)
		}
		values[ln] = vals[len(vals)-1]
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(values[name])
		b.WriteByte('\n')
	}
	return b.String()
}
