package dto

// PageQuery carries the shared pagination query parameters.
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Clamp applies the documented bounds: page >= 1, 1 <= limit <= 100.
func (q *PageQuery) Clamp(defaultLimit int) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}

// Offset converts page/limit into a row offset.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Paged is the uniform list envelope {items, total, page, pages}.
type Paged struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func NewPaged(items any, total int64, page, limit int) Paged {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return Paged{Items: items, Total: total, Page: page, Pages: pages}
}
