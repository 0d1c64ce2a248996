package dto

// AddBookRequest 上架图书请求(管理员)
type AddBookRequest struct {
	URL         string `json:"url" binding:"max=255" example:"https://cdn.example.com/covers/gitanjali.jpg"`
	Title       string `json:"title" binding:"required,max=200" example:"Gitanjali"`
	Author      string `json:"author" binding:"required,max=100" example:"Rabindranath Tagore"`
	Price       int64  `json:"price" binding:"min=0" example:"25000"` // 价格(分),0表示免费
	Stock       int    `json:"stock" binding:"min=0" example:"50"`
	Description string `json:"description" example:"Song offerings"`
	Language    string `json:"language" binding:"max=50" example:"Bengali"`
}

// UpdateBookRequest 更新图书请求(管理员)
// 空字符串表示不修改,price/stock为-1表示不修改
type UpdateBookRequest struct {
	URL         string `json:"url" binding:"max=255"`
	Title       string `json:"title" binding:"max=200"`
	Author      string `json:"author" binding:"max=100"`
	Price       int64  `json:"price" example:"-1"`
	Stock       int    `json:"stock" example:"-1"`
	Description string `json:"description"`
	Language    string `json:"language" binding:"max=50"`
}

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	Page     int `form:"page" example:"1"`
	PageSize int `form:"page_size" example:"20"`
}

// SearchQuery 图书搜索查询参数
// query为标准参数名,q作为兼容别名
type SearchQuery struct {
	Query string `form:"query" example:"tagore"`
	Q     string `form:"q"`
}

// Keyword 返回搜索关键词,query优先于q
func (s *SearchQuery) Keyword() string {
	if s.Query != "" {
		return s.Query
	}
	return s.Q
}
