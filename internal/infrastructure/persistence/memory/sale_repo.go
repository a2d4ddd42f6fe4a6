package memory

import (
	"context"
	"time"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/sale"
)

// saleRepository 销售账本仓储实现(内存)
// 对应原始"无数据库"模式下SalesTracker的append-only列表
type saleRepository struct {
	store *Store
}

// NewSaleRepository 创建销售账本仓储
func NewSaleRepository(store *Store) sale.Repository {
	return &saleRepository{store: store}
}

// Create 追加一条销售记录
func (r *saleRepository) Create(ctx context.Context, record *sale.Record) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	record.ID = r.store.nextSaleID
	r.store.nextSaleID++
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	copied := *record
	r.store.sales = append(r.store.sales, &copied)
	return nil
}

// List 按时间顺序分页查询销售历史
func (r *saleRepository) List(ctx context.Context, offset, limit int) ([]*sale.Record, int64, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	return paginate(r.store.sales, offset, limit)
}

// ListByBookID 查询某本图书的销售历史
func (r *saleRepository) ListByBookID(ctx context.Context, bookID uint, offset, limit int) ([]*sale.Record, int64, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	matched := make([]*sale.Record, 0)
	for _, rec := range r.store.sales {
		if rec.BookID == bookID {
			matched = append(matched, rec)
		}
	}
	return paginate(matched, offset, limit)
}

// Totals 汇总所有销售记录的数量与金额
func (r *saleRepository) Totals(ctx context.Context) (*sale.Totals, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	totals := &sale.Totals{}
	for _, rec := range r.store.sales {
		totals.TotalQuantity += int64(rec.Quantity)
		totals.TotalRevenue += rec.Total
	}
	return totals, nil
}

// paginate 切片分页(记录不可变,返回副本防御外部修改)
func paginate(records []*sale.Record, offset, limit int) ([]*sale.Record, int64, error) {
	total := int64(len(records))
	if limit <= 0 || offset < 0 || offset >= len(records) {
		return []*sale.Record{}, total, nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}

	result := make([]*sale.Record, 0, end-offset)
	for _, rec := range records[offset:end] {
		copied := *rec
		result = append(result, &copied)
	}
	return result, total, nil
}
