package oss

import "context"

// Pager iteration states.
const (
	pagerIdle = iota
	pagerBuffered
	pagerDone
)

// fetchPage retrieves one page of a listing starting at cursor. It
// returns the page's items together with the cursor for the following
// page; an empty next cursor marks the end of the listing.
type fetchPage[T any] func(ctx context.Context, cursor string) (items []T, next string, err error)

// Pager iterates over a paginated listing one item at a time, fetching
// pages lazily as the buffered page is exhausted. It follows the
// familiar scanner shape:
//
//	pager := client.ObjectPager(oss.WithPrefix("photos/"))
//	for pager.Next(ctx) {
//		obj := pager.Item()
//		fmt.Println(obj.Key)
//	}
//	if err := pager.Err(); err != nil {
//		return err
//	}
//
// A Pager performs a single forward traversal and is not safe for
// concurrent use. After Next returns false the pager stays terminated;
// it never re-issues a failed request.
type Pager[T any] struct {
	fetch  fetchPage[T]
	cursor string
	buf    []T
	item   T
	state  int
	err    error
}

// newPager returns a pager that starts fetching at cursor.
func newPager[T any](cursor string, fetch fetchPage[T]) *Pager[T] {
	return &Pager[T]{cursor: cursor, fetch: fetch}
}

// Next advances the pager to the next item, requesting the next page
// when the current one runs out. It returns false once the listing is
// exhausted or a fetch fails; use Err to tell the two apart.
func (p *Pager[T]) Next(ctx context.Context) bool {
	for {
		switch p.state {
		case pagerDone:
			return false

		case pagerBuffered:
			if len(p.buf) > 0 {
				p.item = p.buf[0]
				p.buf = p.buf[1:]
				return true
			}
			if p.cursor == "" {
				p.state = pagerDone
				return false
			}
			// Page drained but the listing continues.
			p.state = pagerIdle

		default: // pagerIdle
			items, next, err := p.fetch(ctx, p.cursor)
			if err != nil {
				p.err = err
				p.state = pagerDone
				return false
			}
			p.buf = items
			p.cursor = next
			p.state = pagerBuffered
		}
	}
}

// Item returns the item the last successful Next advanced to.
func (p *Pager[T]) Item() T {
	return p.item
}

// Err returns the error that terminated the iteration, or nil if the
// listing completed (or is still in progress).
func (p *Pager[T]) Err() error {
	return p.err
}

// All drains the remaining items into a slice. It is a convenience for
// callers that do not need streaming delivery.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	var items []T
	for p.Next(ctx) {
		items = append(items, p.Item())
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
