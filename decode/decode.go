// Package decode implements streaming decoders for the XML documents the
// service returns from its list and info endpoints.
//
// The decoders are generic over their destinations: any type implementing
// Item can receive element fields, and any type implementing ObjectList or
// BucketList can receive a whole listing. The concrete types in osstypes
// satisfy these interfaces, and callers can bring their own implementations
// to capture fields the built-in types do not keep.
//
// Each decoder makes a single pass over the input. Unknown tags are
// skipped, so new fields added by the service do not break older clients.
package decode

import (
	"encoding/xml"
	"io"
	"strings"

	osserrors "github.com/input-output-hk/catalyst-forge-libs/aliyun/oss/errors"
)

// XML tag names used by the service. Exported so that custom Item and
// list implementations can switch on them in SetField.
const (
	TagName                  = "Name"
	TagPrefix                = "Prefix"
	TagContents              = "Contents"
	TagCommonPrefixes        = "CommonPrefixes"
	TagKey                   = "Key"
	TagLastModified          = "LastModified"
	TagETag                  = "ETag"
	TagType                  = "Type"
	TagSize                  = "Size"
	TagStorageClass          = "StorageClass"
	TagMaxKeys               = "MaxKeys"
	TagKeyCount              = "KeyCount"
	TagIsTruncated           = "IsTruncated"
	TagNextContinuationToken = "NextContinuationToken"
	TagBucket                = "Bucket"
	TagCreationDate          = "CreationDate"
	TagLocation              = "Location"
	TagExtranetEndpoint      = "ExtranetEndpoint"
	TagIntranetEndpoint      = "IntranetEndpoint"
	TagMarker                = "Marker"
	TagNextMarker            = "NextMarker"
	TagID                    = "ID"
	TagDisplayName           = "DisplayName"
)

// Item is implemented by destination types that receive decoded element
// fields. SetField is called once per known child element with the tag
// name and its character data; returning an error aborts the decode.
type Item interface {
	SetField(name, value string) error
}

// ObjectList is implemented by destination types for object listings.
type ObjectList[T Item] interface {
	// NewItem returns a fresh destination for the next Contents block.
	NewItem() T

	// SetField receives listing-level fields such as Name and MaxKeys.
	SetField(name, value string) error

	// SetCommonPrefixes receives the prefixes of one CommonPrefixes
	// block. It is called once per block, in document order.
	SetCommonPrefixes(prefixes []string) error

	// SetCursor receives the continuation token for the next page. An
	// empty token means the listing is complete.
	SetCursor(token string) error

	// SetItems receives the decoded objects once the document ends.
	SetItems(items []T) error
}

// BucketList is implemented by destination types for bucket listings.
type BucketList[T Item] interface {
	// NewItem returns a fresh destination for the next Bucket block.
	NewItem() T

	// SetField receives listing-level fields such as Marker and the
	// owner identity.
	SetField(name, value string) error

	// SetCursor receives the marker for the next page. An empty marker
	// means the listing is complete.
	SetCursor(token string) error

	// SetItems receives the decoded buckets once the document ends.
	SetItems(items []T) error
}

// Field routing tables. Only tags listed here reach the destination;
// everything else, including nested blocks like Owner, is skipped.
var (
	objectItemFields = map[string]bool{
		TagKey:          true,
		TagLastModified: true,
		TagETag:         true,
		TagType:         true,
		TagSize:         true,
		TagStorageClass: true,
	}

	objectListFields = map[string]bool{
		TagName:     true,
		TagPrefix:   true,
		TagMaxKeys:  true,
		TagKeyCount: true,
	}

	bucketItemFields = map[string]bool{
		TagName:             true,
		TagCreationDate:     true,
		TagLocation:         true,
		TagExtranetEndpoint: true,
		TagIntranetEndpoint: true,
		TagStorageClass:     true,
	}

	bucketListFields = map[string]bool{
		TagPrefix:      true,
		TagMarker:      true,
		TagMaxKeys:     true,
		TagIsTruncated: true,
		TagID:          true,
		TagDisplayName: true,
	}
)

// Objects decodes a ListObjectsV2 response into list. Each Contents block
// becomes one item from list.NewItem, CommonPrefixes blocks are delivered
// as they close, and the continuation token is delivered last so that the
// destination sees a complete page before deciding whether more follow.
func Objects[T Item](r io.Reader, list ObjectList[T]) error {
	d := xml.NewDecoder(r)

	var (
		items      []T
		item       T
		inItem     bool
		inPrefixes bool
		prefixes   []string
		cursor     string
		text       strings.Builder
	)

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return osserrors.NewDecodeError("", nil, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			text.Reset()
			switch t.Name.Local {
			case TagContents:
				item = list.NewItem()
				inItem = true
			case TagCommonPrefixes:
				inPrefixes = true
				prefixes = nil
			}

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			name := t.Name.Local
			value := text.String()
			text.Reset()

			switch {
			case name == TagContents:
				if inItem {
					items = append(items, item)
					inItem = false
				}

			case name == TagCommonPrefixes:
				inPrefixes = false
				if err := list.SetCommonPrefixes(prefixes); err != nil {
					return osserrors.NewDecodeError(name, nil, err)
				}

			case inPrefixes && name == TagPrefix:
				prefixes = append(prefixes, value)

			case inItem && objectItemFields[name]:
				if name == TagETag {
					value = strings.Trim(value, `"`)
				}
				if err := item.SetField(name, value); err != nil {
					return osserrors.NewDecodeError(name, []byte(value), err)
				}

			case !inItem && name == TagNextContinuationToken:
				cursor = value

			case !inItem && objectListFields[name]:
				if err := list.SetField(name, value); err != nil {
					return osserrors.NewDecodeError(name, []byte(value), err)
				}
			}
		}
	}

	if err := list.SetItems(items); err != nil {
		return osserrors.NewDecodeError(TagContents, nil, err)
	}
	if err := list.SetCursor(cursor); err != nil {
		return osserrors.NewDecodeError(TagNextContinuationToken, nil, err)
	}
	return nil
}

// Buckets decodes a ListAllMyBuckets response into list. Each Bucket
// block becomes one item from list.NewItem; the owner identity and paging
// fields are routed to the listing itself.
func Buckets[T Item](r io.Reader, list BucketList[T]) error {
	d := xml.NewDecoder(r)

	var (
		items  []T
		item   T
		inItem bool
		cursor string
		text   strings.Builder
	)

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return osserrors.NewDecodeError("", nil, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			text.Reset()
			if t.Name.Local == TagBucket {
				item = list.NewItem()
				inItem = true
			}

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			name := t.Name.Local
			value := text.String()
			text.Reset()

			switch {
			case name == TagBucket:
				if inItem {
					items = append(items, item)
					inItem = false
				}

			case inItem && bucketItemFields[name]:
				if err := item.SetField(name, value); err != nil {
					return osserrors.NewDecodeError(name, []byte(value), err)
				}

			case !inItem && name == TagNextMarker:
				cursor = value

			case !inItem && bucketListFields[name]:
				if err := list.SetField(name, value); err != nil {
					return osserrors.NewDecodeError(name, []byte(value), err)
				}
			}
		}
	}

	if err := list.SetItems(items); err != nil {
		return osserrors.NewDecodeError(TagBucket, nil, err)
	}
	if err := list.SetCursor(cursor); err != nil {
		return osserrors.NewDecodeError(TagNextMarker, nil, err)
	}
	return nil
}

// BucketInfo decodes a GetBucketInfo response into item. The same field
// names as bucket listings apply, so a single destination type serves
// both endpoints.
func BucketInfo(r io.Reader, item Item) error {
	d := xml.NewDecoder(r)

	var text strings.Builder
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return osserrors.NewDecodeError("", nil, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			text.Reset()

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			name := t.Name.Local
			value := text.String()
			text.Reset()

			if bucketItemFields[name] {
				if err := item.SetField(name, value); err != nil {
					return osserrors.NewDecodeError(name, []byte(value), err)
				}
			}
		}
	}
	return nil
}
