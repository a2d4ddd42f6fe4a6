package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/sale"
	apperrors "github.com/Aliarcher/Bookstore-Management/pkg/errors"
)

// saleRepository 销售账本仓储实现(MySQL)
// 设计说明:
// 1. 账本只追加:只实现Create和各种查询,没有Update/Delete
// 2. Totals用SQL聚合计算(COALESCE处理空账本)
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售账本仓储
func NewSaleRepository(db *gorm.DB) sale.Repository {
	return &saleRepository{db: db}
}

// Create 追加一条销售记录
// 必须与图书库存扣减在同一事务中提交(通过context传递事务)
func (r *saleRepository) Create(ctx context.Context, record *sale.Record) error {
	model := &SaleModel{
		SaleNo:    record.SaleNo,
		BookID:    record.BookID,
		BookTitle: record.BookTitle,
		Quantity:  record.Quantity,
		UnitPrice: record.UnitPrice,
		Total:     record.Total,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		// 流水号撞上唯一索引的概率极低(秒级时间戳+6位随机数),撞上让调用方重试
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeBusinessError, "销售流水号冲突,请重试")
		}
		return apperrors.Wrap(err, "写入销售记录失败")
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	return nil
}

// List 按时间顺序分页查询销售历史
func (r *saleRepository) List(ctx context.Context, offset, limit int) ([]*sale.Record, int64, error) {
	return r.list(ctx, r.getDB(ctx).Model(&SaleModel{}), offset, limit)
}

// ListByBookID 查询某本图书的销售历史
func (r *saleRepository) ListByBookID(ctx context.Context, bookID uint, offset, limit int) ([]*sale.Record, int64, error) {
	query := r.getDB(ctx).Model(&SaleModel{}).Where("book_id = ?", bookID)
	return r.list(ctx, query, offset, limit)
}

// list 公共分页查询逻辑
func (r *saleRepository) list(ctx context.Context, query *gorm.DB, offset, limit int) ([]*sale.Record, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询销售记录总数失败")
	}

	if limit <= 0 {
		return []*sale.Record{}, total, nil
	}

	var models []SaleModel
	if err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询销售记录失败")
	}

	records := make([]*sale.Record, len(models))
	for i := range models {
		records[i] = toSaleEntity(&models[i])
	}
	return records, total, nil
}

// Totals 汇总所有销售记录的数量与金额
// 空账本返回(0, 0)
func (r *saleRepository) Totals(ctx context.Context) (*sale.Totals, error) {
	var totals sale.Totals
	err := r.getDB(ctx).Model(&SaleModel{}).
		Select("COALESCE(SUM(quantity), 0) AS total_quantity, COALESCE(SUM(total), 0) AS total_revenue").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "汇总销售记录失败")
	}
	return &totals, nil
}

// =========================================
// 辅助函数
// =========================================

// toSaleEntity GORM模型 → 领域实体
func toSaleEntity(model *SaleModel) *sale.Record {
	return &sale.Record{
		ID:        model.ID,
		SaleNo:    model.SaleNo,
		BookID:    model.BookID,
		BookTitle: model.BookTitle,
		Quantity:  model.Quantity,
		UnitPrice: model.UnitPrice,
		Total:     model.Total,
		CreatedAt: model.CreatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *saleRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
