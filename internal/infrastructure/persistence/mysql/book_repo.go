package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/humaira228/DeenOasis/internal/domain/book"
	apperrors "github.com/humaira228/DeenOasis/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. SearchCandidates只做候选集过滤,打分排序由search.Engine完成
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := toBookModel(b)

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByIDs 批量查找图书
// 用一条IN查询避免N+1,返回map便于按ID关联
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	result := make(map[uint]*book.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []BookModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}

	for i := range models {
		result[models[i].ID] = toBookEntity(&models[i])
	}
	return result, nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = b.ID

	// 使用Save更新所有字段
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 分页查询图书列表,最新上架在前
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := r.db.WithContext(ctx).Model(&BookModel{})

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 分页
	offset := (params.Page - 1) * params.PageSize
	err := query.Order("created_at DESC").
		Limit(params.PageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// ListRecent 查询最近上架的图书
func (r *bookRepository) ListRecent(ctx context.Context, limit int) ([]*book.Book, error) {
	var models []BookModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询最近上架图书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// SearchCandidates 搜索候选集查询
// 命中条件:title/author/language包含q(LOWER比较,大小写不敏感),
// 或音译字段包含t(音译字段入库时已是小写)
func (r *bookRepository) SearchCandidates(ctx context.Context, q, t string) ([]*book.Book, error) {
	likeQ := "%" + q + "%"
	likeT := "%" + t + "%"

	var models []BookModel
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(language) LIKE ?"+
			" OR transliterated_title LIKE ? OR transliterated_author LIKE ?",
			likeQ, likeQ, likeQ, likeT, likeT).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索图书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// LockByID 悲观锁查询图书(用于订单创建)
// SELECT FOR UPDATE锁定行,防止并发超卖
// 必须通过getDB(ctx)参与TxManager开启的事务
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := getDB(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// UpdateStock 更新库存(原子操作)
// UPDATE books SET stock = stock + delta WHERE id = ? AND stock + delta >= 0
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta). // 防止库存为负
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,或者库存不足,再查一次确定原因
		var model BookModel
		if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		// 图书存在,说明是库存不足
		return book.ErrInsufficientStock
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		URL:                  b.URL,
		Title:                b.Title,
		TransliteratedTitle:  b.TransliteratedTitle,
		Author:               b.Author,
		TransliteratedAuthor: b.TransliteratedAuthor,
		Price:                b.Price,
		Stock:                b.Stock,
		Description:          b.Description,
		Language:             b.Language,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:                   model.ID,
		URL:                  model.URL,
		Title:                model.Title,
		TransliteratedTitle:  model.TransliteratedTitle,
		Author:               model.Author,
		TransliteratedAuthor: model.TransliteratedAuthor,
		Price:                model.Price,
		Stock:                model.Stock,
		Description:          model.Description,
		Language:             model.Language,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
}
