package book

import (
	"context"
	"strings"

	"github.com/humaira228/DeenOasis/pkg/translit"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 音译字段在此统一派生,保证入库数据与搜索查询使用同一套转换
type Service interface {
	// AddBook 上架图书(管理员操作,权限校验在interface层)
	// 业务规则:
	// - 书名、作者不能为空
	// - 价格>=0,库存>=0
	// - 音译字段由title/author派生
	AddBook(ctx context.Context, url, title, author string, price int64, stock int, description, language string) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书信息(管理员操作)
	// 传空字符串的字段保持原值;title/author变化时音译字段同步重算
	UpdateBook(ctx context.Context, id uint, url, title, author string, price int64, stock int, description, language string) (*Book, error)

	// DeleteBook 删除图书(管理员操作,软删除)
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListRecentBooks 查询最近上架的图书
	ListRecentBooks(ctx context.Context, limit int) ([]*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 上架图书
func (s *service) AddBook(ctx context.Context, url, title, author string, price int64, stock int, description, language string) (*Book, error) {
	// 1. 基本校验
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if author == "" {
		return nil, ErrEmptyAuthor
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	// 2. 派生音译字段(小写罗马化,与搜索查询的转换保持一致)
	b := NewBook(
		url,
		title, translit.Fold(title),
		author, translit.Fold(author),
		price, stock, description, language,
	)

	// 3. 持久化
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书信息
func (s *service) UpdateBook(ctx context.Context, id uint, url, title, author string, price int64, stock int, description, language string) (*Book, error) {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 更新基本信息(音译字段随title/author重算)
	b.UpdateInfo(
		url,
		title, translit.Fold(title),
		author, translit.Fold(author),
		description, language,
	)

	// 3. 更新价格和库存(负数视为"不修改")
	if price >= 0 {
		if err := b.UpdatePrice(price); err != nil {
			return nil, err
		}
	}
	if stock >= 0 {
		b.Stock = stock
	}

	// 4. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	// 确认存在,保证NotFound语义
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// ListRecentBooks 查询最近上架的图书
func (s *service) ListRecentBooks(ctx context.Context, limit int) ([]*Book, error) {
	return s.repo.ListRecent(ctx, limit)
}
