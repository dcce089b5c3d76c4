package store

// PageParams selects one window of a listing. Page numbers are 1-based.
type PageParams struct {
	Page int // 1-based page number
	Size int // items per page (defaults to 20 with a maximum of 100)
}

// PaginatedResult contains one page of data and the total match count.
type PaginatedResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

// DefaultPageParams returns sensible defaults.
func DefaultPageParams() PageParams {
	return PageParams{Page: 1, Size: 20}
}

// Validate checks and corrects pagination parameters.
func (p *PageParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
}

// Offset converts the 1-based page number to a row offset.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Size
}
