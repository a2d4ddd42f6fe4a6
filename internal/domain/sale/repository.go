package sale

import (
	"context"
)

// Repository 销售账本仓储接口(依赖倒置原则)
// 设计说明:
// 1. 账本只追加:没有Update/Delete操作
// 2. Create支持事务传递(与图书库存扣减在同一事务中提交)
// 3. Totals由存储层聚合计算(SQL SUM / 内存累加)
type Repository interface {
	// Create 追加一条销售记录(回填自增ID)
	Create(ctx context.Context, record *Record) error

	// List 按时间顺序(ID升序)分页查询销售历史
	List(ctx context.Context, offset, limit int) ([]*Record, int64, error)

	// ListByBookID 查询某本图书的销售历史
	ListByBookID(ctx context.Context, bookID uint, offset, limit int) ([]*Record, int64, error)

	// Totals 汇总所有销售记录的数量与金额
	// 账本为空时返回(0, 0)
	Totals(ctx context.Context) (*Totals, error)
}
