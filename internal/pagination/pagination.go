// Package pagination slices ordered result sets into fixed-size pages.
package pagination

// Pager describes one page of an ordered result set. Page numbers are
// 1-indexed. Out-of-range requests clamp to the nearest valid page, so
// a pager always points at a real page (page 1 when the set is empty).
type Pager struct {
	Page     int   `json:"page"`
	Size     int   `json:"-"`
	NumPages int   `json:"num_pages"`
	Total    int64 `json:"total"`
}

// New builds a Pager for a result set of total items with the given
// page size, clamping requested into the valid range.
func New(total int64, size, requested int) Pager {
	if size <= 0 {
		size = 1
	}
	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}
	page := requested
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}
	return Pager{
		Page:     page,
		Size:     size,
		NumPages: numPages,
		Total:    total,
	}
}

// Offset is the number of items to skip for this page.
func (p Pager) Offset() int {
	return (p.Page - 1) * p.Size
}

// Limit is the maximum number of items on this page.
func (p Pager) Limit() int {
	return p.Size
}

// HasNext reports whether a later page exists.
func (p Pager) HasNext() bool {
	return p.Page < p.NumPages
}

// HasPrev reports whether an earlier page exists.
func (p Pager) HasPrev() bool {
	return p.Page > 1
}
