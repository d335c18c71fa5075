package osstypes

import (
	"fmt"
	"net/url"
	"strings"

	osserrors "github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/errors"
)

// QueryKey names a request query parameter.
type QueryKey string

// Query parameter keys understood by the listing endpoints.
const (
	QueryKeyPrefix            QueryKey = "prefix"
	QueryKeyDelimiter         QueryKey = "delimiter"
	QueryKeyMarker            QueryKey = "marker"
	QueryKeyStartAfter        QueryKey = "start-after"
	QueryKeyContinuationToken QueryKey = "continuation-token"
	QueryKeyMaxKeys           QueryKey = "max-keys"
	QueryKeyEncodingType      QueryKey = "encoding-type"
	QueryKeyFetchOwner        QueryKey = "fetch-owner"
	QueryKeyListType          QueryKey = "list-type"
)

// Sub-resource keys. These address a facet of a bucket rather than its
// contents and participate in request signing as bare keys.
const (
	QueryKeyACL        QueryKey = "acl"
	QueryKeyBucketInfo QueryKey = "bucketInfo"
	QueryKeyLocation   QueryKey = "location"
)

// QueryPair is one key=value parameter of a Query.
type QueryPair struct {
	Key   QueryKey
	Value string
}

// Query is an ordered collection of unique query parameters. Keys keep
// their insertion order and setting an existing key replaces its value in
// place, so the wire form is deterministic.
type Query struct {
	pairs []QueryPair
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Set adds key with value, replacing the value in place when the key is
// already present.
func (q *Query) Set(key QueryKey, value string) {
	for i := range q.pairs {
		if q.pairs[i].Key == key {
			q.pairs[i].Value = value
			return
		}
	}
	q.pairs = append(q.pairs, QueryPair{Key: key, Value: value})
}

// Get returns the value for key and whether the key is present.
func (q *Query) Get(key QueryKey) (string, bool) {
	for i := range q.pairs {
		if q.pairs[i].Key == key {
			return q.pairs[i].Value, true
		}
	}
	return "", false
}

// Del removes key if present.
func (q *Query) Del(key QueryKey) {
	for i := range q.pairs {
		if q.pairs[i].Key == key {
			q.pairs = append(q.pairs[:i], q.pairs[i+1:]...)
			return
		}
	}
}

// Len returns the number of parameters.
func (q *Query) Len() int { return len(q.pairs) }

// Pairs returns a copy of the parameters in insertion order.
func (q *Query) Pairs() []QueryPair {
	out := make([]QueryPair, len(q.pairs))
	copy(out, q.pairs)
	return out
}

// Encode renders the query in wire form, percent-encoding keys and
// values. Encoding then parsing yields an equal query.
func (q *Query) Encode() string {
	if len(q.pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range q.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(string(p.Key)))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// ParseQuery parses a wire-form query string back into a Query,
// preserving parameter order.
func ParseQuery(s string) (*Query, error) {
	q := NewQuery()
	for _, part := range strings.Split(s, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, osserrors.NewError("parseQuery", osserrors.ErrInvalidInput).
				WithMessage(fmt.Sprintf("malformed query parameter %q", part))
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, osserrors.NewError("parseQuery", osserrors.ErrInvalidInput).
				WithMessage(fmt.Sprintf("malformed query parameter %q", part))
		}
		q.Set(QueryKey(key), value)
	}
	return q, nil
}
