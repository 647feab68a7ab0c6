package service

const (
	DefaultVideoLimit = 12
	MaxVideoLimit     = 50
	AdminPageSize     = 10
	DefaultPageLimit  = 10
)

// Page 规范化后的分页参数
type Page struct {
	Page  int
	Limit int
}

// NewPage 非法值回落到默认，limit不超过max
func NewPage(page, limit, def, max int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages 向上取整，没有数据时是0
func (p Page) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
