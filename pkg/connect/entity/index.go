package entity

import (
	"context"
	"fmt"

	connecterrors "github.com/symfonycorp/connect-go/pkg/connect/errors"
)

// Index is one page of a paginated collection. Items keep document order.
// Count is whatever the server declared; it is never recomputed from the
// number of items actually parsed.
type Index struct {
	Entity
}

func NewIndex(selfURL string) *Index {
	i := &Index{Entity: newEntity("index", selfURL, "")}
	i.declare("total", "count", "index", "limit", "nextUrl", "prevUrl")
	i.addProperty("items", []any{})

	return i
}

func (i *Index) Items() []Resource {
	value, _ := i.Get("items")
	raw, _ := value.([]any)

	items := make([]Resource, 0, len(raw))
	for _, item := range raw {
		if resource, ok := item.(Resource); ok {
			items = append(items, resource)
		}
	}

	return items
}

func (i *Index) AddItem(item Resource) *Index {
	i.Add("items", item)
	return i
}

func (i *Index) At(position int) Resource {
	items := i.Items()
	if position < 0 || position >= len(items) {
		return nil
	}

	return items[position]
}

func (i *Index) Len() int {
	return len(i.Items())
}

func (i *Index) Total() int {
	value, _ := i.Get("total")
	return asInt(value)
}

func (i *Index) SetTotal(total int) *Index {
	i.Set("total", total)
	return i
}

// Count is the server-declared number of items on this page.
func (i *Index) Count() int {
	value, _ := i.Get("count")
	return asInt(value)
}

func (i *Index) SetCount(count int) *Index {
	i.Set("count", count)
	return i
}

// Offset is the page offset the server calls "index".
func (i *Index) Offset() int {
	value, _ := i.Get("index")
	return asInt(value)
}

func (i *Index) SetOffset(offset int) *Index {
	i.Set("index", offset)
	return i
}

func (i *Index) Limit() int {
	value, _ := i.Get("limit")
	return asInt(value)
}

func (i *Index) SetLimit(limit int) *Index {
	i.Set("limit", limit)
	return i
}

func (i *Index) NextURL() string {
	value, _ := i.Get("nextUrl")
	return asString(value)
}

func (i *Index) SetNextURL(url string) *Index {
	i.Set("nextUrl", url)
	return i
}

func (i *Index) PrevURL() string {
	value, _ := i.Get("prevUrl")
	return asString(value)
}

func (i *Index) SetPrevURL(url string) *Index {
	i.Set("prevUrl", url)
	return i
}

func (i *Index) Next(ctx context.Context) (*Index, error) {
	return i.turnPage(ctx, i.NextURL(), "next")
}

func (i *Index) Prev(ctx context.Context) (*Index, error) {
	return i.turnPage(ctx, i.PrevURL(), "previous")
}

func (i *Index) turnPage(ctx context.Context, url, direction string) (*Index, error) {
	if url == "" {
		return nil, fmt.Errorf("this index has no %s page", direction)
	}

	if i.api == nil {
		return nil, connecterrors.NewSchemaError("index is not attached to an api client")
	}

	resource, err := i.api.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	index, ok := resource.(*Index)
	if !ok {
		return nil, connecterrors.NewBadResponseError(fmt.Sprintf("expected an index, got %s", resource.Kind()))
	}

	return index, nil
}
