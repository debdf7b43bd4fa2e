// Package paginator slices ordered result sets into fixed-size pages.
//
// Page numbers are 1-based. A missing, non-numeric or non-positive page
// number resolves to page 1; a number past the last page resolves to the
// last page. An empty result set still has one (empty) page.
package paginator

import (
	"errors"
	"strconv"
	"strings"
)

// Paginator describes a result set of Total items split into pages of Size.
type Paginator struct {
	Total int64
	Size  int
}

// Window is one resolved page of a Paginator.
type Window struct {
	Number      int   `json:"number"`
	Size        int   `json:"size"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`

	// Next and Previous are 0 when there is no such page.
	Next     int `json:"next,omitempty"`
	Previous int `json:"previous,omitempty"`

	Offset int `json:"-"`
	Limit  int `json:"-"`
}

// Page is a Window together with the items it holds.
type Page[T any] struct {
	Window
	Items []T `json:"items"`
}

// New panics on a non-positive size: the page size is a startup constant.
func New(total int64, size int) *Paginator {
	if size <= 0 {
		panic("paginator: page size must be positive")
	}
	if total < 0 {
		total = 0
	}
	return &Paginator{Total: total, Size: size}
}

// NumPages is never less than 1.
func (p *Paginator) NumPages() int {
	if p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// Page resolves a raw page parameter, as read from a query string.
func (p *Paginator) Page(raw string) Window {
	return p.PageNumber(ParseNumber(raw))
}

// PageNumber resolves an already parsed page number.
func (p *Paginator) PageNumber(n int) Window {
	last := p.NumPages()
	if n < 1 {
		n = 1
	}
	if n > last {
		n = last
	}

	offset := (n - 1) * p.Size
	limit := p.Size
	if remain := p.Total - int64(offset); remain < int64(limit) {
		limit = int(max(remain, 0))
	}

	w := Window{
		Number:      n,
		Size:        p.Size,
		Total:       p.Total,
		TotalPages:  last,
		HasNext:     n < last,
		HasPrevious: n > 1,
		Offset:      offset,
		Limit:       limit,
	}
	if w.HasNext {
		w.Next = n + 1
	}
	if w.HasPrevious {
		w.Previous = n - 1
	}
	return w
}

// ParseNumber returns 1 for anything that is not a positive integer.
// Positive numbers too large for an int saturate, so they still land on
// the last page.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && n > 0 {
			return n
		}
		return 1
	}
	if n < 1 {
		return 1
	}
	return n
}

// Paginate slices an in-memory ordered list.
func Paginate[T any](items []T, size int, raw string) Page[T] {
	w := New(int64(len(items)), size).Page(raw)
	out := make([]T, w.Limit)
	copy(out, items[w.Offset:w.Offset+w.Limit])
	return Page[T]{Window: w, Items: out}
}

// WithItems attaches items fetched for w, e.g. by an OFFSET/LIMIT query.
func WithItems[T any](w Window, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Window: w, Items: items}
}
