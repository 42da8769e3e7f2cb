package session

import "fmt"

// DefaultPageSize is the number of hits requested per page.
const DefaultPageSize = 30

// Pagination tracks the current page against the last known total.
type Pagination struct {
	Page     int
	PageSize int
	Total    int
}

// NewPagination returns page 0 with the given size (DefaultPageSize when <= 0).
func NewPagination(pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Pagination{PageSize: pageSize}
}

// Offset is the `from` value for the current page.
func (p Pagination) Offset() int {
	return p.Page * p.PageSize
}

// LastPage is ceil(Total/PageSize)-1; -1 when there are no results.
func (p Pagination) LastPage() int {
	return totalPages(p.Total, p.PageSize) - 1
}

// Reset goes back to the first page.
func (p *Pagination) Reset() {
	p.Page = 0
}

// Next advances one page. It is a no-op on the last page.
func (p *Pagination) Next() bool {
	if p.Page >= p.LastPage() {
		return false
	}
	p.Page++
	return true
}

// Prev goes back one page. It is a no-op on the first page.
func (p *Pagination) Prev() bool {
	if p.Page == 0 {
		return false
	}
	p.Page--
	return true
}

// Bounds returns navigation state for the current page.
func (p Pagination) Bounds() Bounds {
	return ComputeBounds(p.Page, p.Total, p.PageSize)
}

// Label renders "Page N of M".
func (p Pagination) Label() string {
	pages := totalPages(p.Total, p.PageSize)
	if pages < 1 {
		pages = 1
	}
	return fmt.Sprintf("Page %d of %d", p.Page+1, pages)
}

// Bounds drives the enabled/hidden state of pagination controls.
type Bounds struct {
	TotalPages int
	HasPrev    bool
	HasNext    bool
	// Visible is false when everything fits on one page; controls are hidden, not disabled.
	Visible bool
}

// ComputeBounds is the pure form of Pagination.Bounds.
func ComputeBounds(page, total, pageSize int) Bounds {
	pages := totalPages(total, pageSize)
	return Bounds{
		TotalPages: pages,
		HasPrev:    page > 0,
		HasNext:    page < pages-1,
		Visible:    total > pageSize,
	}
}

func totalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
