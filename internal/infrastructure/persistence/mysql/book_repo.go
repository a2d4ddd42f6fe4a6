package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
	apperrors "github.com/Aliarcher/Bookstore-Management/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 列表查询固定按ID升序(插入顺序),对应前端翻页语义
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
	model := &BookModel{
		Title:    b.Title,
		Author:   b.Author,
		Price:    b.Price,
		Stock:    b.Stock,
		Sold:     b.Sold,
		Discount: b.Discount,
	}

	// 2. 插入数据库
	if err := r.getDB(ctx).Create(model).Error; err != nil {
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
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书的可编辑字段
// sold不在更新列里:累计销量只由ApplySale的原子UPDATE累加,
// 这里如果整行覆盖,会把并发成交后的sold回写成读取时的旧值
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	b.UpdatedAt = time.Now()

	err := r.getDB(ctx).Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"title":      b.Title,
			"author":     b.Author,
			"price":      b.Price,
			"stock":      b.Stock,
			"discount":   b.Discount,
			"updated_at": b.UpdatedAt,
		}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	return nil
}

// Delete 删除图书(软删除)
// 销售记录不级联删除,账本作为历史事实保留
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 按插入顺序分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	// 构建查询
	query := r.getDB(ctx).Model(&BookModel{})

	// 关键词搜索(不区分大小写的子串匹配)
	// 说明:utf8mb4默认collation本身不区分大小写,LOWER是为了不依赖collation配置
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		switch params.Field {
		case book.SearchByTitle:
			query = query.Where("LOWER(title) LIKE LOWER(?)", keyword)
		case book.SearchByAuthor:
			query = query.Where("LOWER(author) LIKE LOWER(?)", keyword)
		default:
			query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", keyword, keyword)
		}
	}

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// limit<=0只返回总数
	if params.Limit <= 0 {
		return []*book.Book{}, total, nil
	}

	// 固定按ID升序(插入顺序),分页
	query = query.Order("id ASC").Limit(params.Limit).Offset(params.Offset)

	// 查询数据
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// LockByID 悲观锁查询图书(用于销售时锁定库存)
// SELECT FOR UPDATE锁定行,必须在事务内调用(通过getDB(ctx)传递事务)
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := r.getDB(ctx)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// ApplySale 原子化应用一笔销售
// UPDATE books SET stock = stock - ?, sold = sold + ? WHERE id = ? AND stock >= ?
// WHERE条件防止库存为负,0行受影响时再查一次区分"不存在"和"库存不足"
func (r *bookRepository) ApplySale(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return book.ErrInvalidQuantity
	}

	db := r.getDB(ctx)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock >= ?", quantity).
		Updates(map[string]interface{}{
			"stock": gorm.Expr("stock - ?", quantity),
			"sold":  gorm.Expr("sold + ?", quantity),
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,或者库存不足,再查一次确定原因
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		return book.ErrInsufficientStock
	}

	return nil
}

// AddStock 补货(原子操作)
func (r *bookRepository) AddStock(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return book.ErrInvalidQuantity
	}

	result := r.getDB(ctx).Model(&BookModel{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "补货失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		Price:     model.Price,
		Stock:     model.Stock,
		Sold:      model.Sold,
		Discount:  model.Discount,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 事务传递机制:TxManager把事务DB放进context,仓储方法自动参与事务
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
