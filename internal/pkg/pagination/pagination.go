package pagination

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page 后端列表接口的统一返回
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// TotalPages 总页数
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// HasNext 是否还有下一页
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages()
}

// HasPrev 是否有上一页
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// Normalize 修正分页参数，pageSize 超出范围时回退到默认值
func Normalize(page, pageSize, defaultSize int) (int, int) {
	if defaultSize <= 0 || defaultSize > MaxPageSize {
		defaultSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = defaultSize
	}
	return page, pageSize
}
