package domain

// Pagination carries paging params and totals.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination fills TotalPages from the total row count.
func NewPagination(page, pageSize, total int) Pagination {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: pages}
}

// Page is one page of a list query.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// PageQuery is the common paging input for list endpoints.
type PageQuery struct {
	Page     int
	PageSize int
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID    int64  `json:"userId"`
	Role      string `json:"role"`
	RequestID string `json:"-"`
}
