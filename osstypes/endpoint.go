package osstypes

import (
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/internal/validation"
)

// Known provider regions.
const (
	RegionCnHangzhou    = "cn-hangzhou"
	RegionCnShanghai    = "cn-shanghai"
	RegionCnQingdao     = "cn-qingdao"
	RegionCnBeijing     = "cn-beijing"
	RegionCnZhangjiakou = "cn-zhangjiakou"
	RegionCnHongkong    = "cn-hongkong"
	RegionCnShenzhen    = "cn-shenzhen"
	RegionUsWest1       = "us-west-1"
	RegionUsEast1       = "us-east-1"
	RegionApSouthEast1  = "ap-southeast-1"
)

const (
	ossDomain      = ".aliyuncs.com"
	ossHostPrefix  = "oss-"
	internalSuffix = "-internal"
)

// knownRegions is the closed set of provider regions.
var knownRegions = map[string]bool{
	RegionCnHangzhou:    true,
	RegionCnShanghai:    true,
	RegionCnQingdao:     true,
	RegionCnBeijing:     true,
	RegionCnZhangjiakou: true,
	RegionCnHongkong:    true,
	RegionCnShenzhen:    true,
	RegionUsWest1:       true,
	RegionUsEast1:       true,
	RegionApSouthEast1:  true,
}

// regionAliases maps accepted shorthand spellings to canonical regions.
var regionAliases = map[string]string{
	"hangzhou":    RegionCnHangzhou,
	"shanghai":    RegionCnShanghai,
	"qingdao":     RegionCnQingdao,
	"beijing":     RegionCnBeijing,
	"zhangjiakou": RegionCnZhangjiakou,
	"hongkong":    RegionCnHongkong,
	"shenzhen":    RegionCnShenzhen,
}

// EndPoint identifies the service region a client talks to. It is either
// one of the known provider regions or a validated custom region
// identifier, optionally marked to use the VPC-internal host.
type EndPoint struct {
	region   string
	internal bool
}

// NewEndPoint resolves region into an endpoint. Known regions and their
// shorthand aliases are accepted as-is; anything else is treated as a
// custom region identifier and validated.
func NewEndPoint(region string) (EndPoint, error) {
	r := strings.ToLower(strings.TrimSpace(region))
	if canonical, ok := regionAliases[r]; ok {
		r = canonical
	}
	if knownRegions[r] {
		return EndPoint{region: r}, nil
	}
	if err := validation.ValidateRegion(r); err != nil {
		return EndPoint{}, err
	}
	return EndPoint{region: r}, nil
}

// NewInternalEndPoint resolves region like NewEndPoint and marks the
// endpoint to use the VPC-internal host.
func NewInternalEndPoint(region string) (EndPoint, error) {
	ep, err := NewEndPoint(region)
	if err != nil {
		return EndPoint{}, err
	}
	ep.internal = true
	return ep, nil
}

// EndPointFromHost derives an endpoint from a service hostname such as
// "oss-cn-qingdao.aliyuncs.com". Scheme prefixes, the provider domain and
// the internal marker are stripped before the region is resolved.
func EndPointFromHost(host string) (EndPoint, error) {
	h := strings.ToLower(strings.TrimSpace(host))
	h = strings.TrimPrefix(h, "https://")
	h = strings.TrimPrefix(h, "http://")
	h = strings.TrimSuffix(h, "/")
	h = strings.TrimSuffix(h, ossDomain)
	internal := strings.HasSuffix(h, internalSuffix)
	h = strings.TrimSuffix(h, internalSuffix)
	h = strings.TrimPrefix(h, ossHostPrefix)

	ep, err := NewEndPoint(h)
	if err != nil {
		return EndPoint{}, err
	}
	ep.internal = internal
	return ep, nil
}

// Region returns the canonical region identifier.
func (e EndPoint) Region() string { return e.region }

// IsInternal reports whether the VPC-internal host is used.
func (e EndPoint) IsInternal() bool { return e.internal }

// IsZero reports whether the endpoint is unset.
func (e EndPoint) IsZero() bool { return e.region == "" }

// Host returns the service hostname, e.g. "oss-cn-qingdao.aliyuncs.com".
func (e EndPoint) Host() string {
	if e.internal {
		return ossHostPrefix + e.region + internalSuffix + ossDomain
	}
	return ossHostPrefix + e.region + ossDomain
}

// URL returns the https service endpoint.
func (e EndPoint) URL() string {
	return "https://" + e.Host()
}

// String implements fmt.Stringer and returns the region identifier.
func (e EndPoint) String() string { return e.region }
