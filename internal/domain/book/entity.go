package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书的核心属性
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. TransliteratedTitle/TransliteratedAuthor是派生字段:
//    创建/更新时由领域服务统一romanize(音译),用于跨文字搜索
//    (如孟加拉文书名与罗马化拼写都能命中同一本书)
type Book struct {
	ID                   uint
	URL                  string // 封面图片URL
	Title                string // 书名(原文)
	TransliteratedTitle  string // 书名音译(小写罗马化,入库时派生)
	Author               string // 作者(原文)
	TransliteratedAuthor string // 作者音译(小写罗马化,入库时派生)
	Price                int64  // 价格(单位:分,1元=100分)
	Stock                int    // 可售库存
	Description          string // 图书描述
	Language             string // 语言(如Bengali、English)
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewBook 创建新图书(工厂方法)
// transliteratedTitle/transliteratedAuthor由调用方(领域服务)派生后传入
func NewBook(url, title, transliteratedTitle, author, transliteratedAuthor string, price int64, stock int, description, language string) *Book {
	now := time.Now()
	return &Book{
		URL:                  url,
		Title:                title,
		TransliteratedTitle:  transliteratedTitle,
		Author:               author,
		TransliteratedAuthor: transliteratedAuthor,
		Price:                price,
		Stock:                stock,
		Description:          description,
		Language:             language,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// UpdateInfo 更新图书基本信息(领域行为)
// 音译字段与title/author同步更新,保证搜索字段不脱节
func (b *Book) UpdateInfo(url, title, transliteratedTitle, author, transliteratedAuthor, description, language string) {
	if url != "" {
		b.URL = url
	}
	if title != "" {
		b.Title = title
		b.TransliteratedTitle = transliteratedTitle
	}
	if author != "" {
		b.Author = author
		b.TransliteratedAuthor = transliteratedAuthor
	}
	if description != "" {
		b.Description = description
	}
	if language != "" {
		b.Language = language
	}
	b.UpdatedAt = time.Now()
}

// UpdatePrice 更新价格(领域行为)
// 业务规则:价格不能为负数
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice < 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// DecrStock 扣减库存(用于订单创建)
// 业务规则:扣减后库存不能为负数
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Stock < quantity {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock 增加库存(用于订单取消补偿、补货)
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}
