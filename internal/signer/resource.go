package signer

import (
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/osstypes"
)

// subResources are the query keys that participate in the canonicalized
// resource as a bare key, without their value.
var subResources = map[osstypes.QueryKey]bool{
	osstypes.QueryKeyACL:        true,
	osstypes.QueryKeyBucketInfo: true,
	osstypes.QueryKeyLocation:   true,
}

// CanonicalResource builds the CanonicalizedResource component of the
// signing string. The three forms are
//
//	/                    service level
//	/{bucket}/           bucket level
//	/{bucket}/{object}   object level
//
// At bucket level a continuation-token parameter is appended as
// ?continuation-token={value}; it is the only parameter signed with its
// value. Otherwise the first sub-resource key present in the query is
// appended bare, as ?{key}.
//
// The object path is embedded raw (percent-decoded); only the request
// URL carries percent-encoding.
func CanonicalResource(bucket, object string, query *osstypes.Query) string {
	if bucket == "" {
		return "/"
	}
	if object != "" {
		return "/" + bucket + "/" + object
	}

	var b strings.Builder
	b.WriteByte('/')
	b.WriteString(bucket)
	b.WriteByte('/')
	if query != nil {
		if token, ok := query.Get(osstypes.QueryKeyContinuationToken); ok && token != "" {
			b.WriteByte('?')
			b.WriteString(string(osstypes.QueryKeyContinuationToken))
			b.WriteByte('=')
			b.WriteString(token)
			return b.String()
		}
		for _, p := range query.Pairs() {
			if subResources[p.Key] {
				b.WriteByte('?')
				b.WriteString(string(p.Key))
				break
			}
		}
	}
	return b.String()
}
