package sale

import (
	"time"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
)

// Record 销售记录实体(追加写入,不可变)
// 设计说明:
// 1. 不是独立聚合根的从属实体,而是只追加的账本条目
// 2. UnitPrice/Total记录"成交时刻"的折后价快照,之后改价/改折扣不回溯
// 3. BookTitle冗余存储书名快照:图书删除后账本仍然可读
// 4. 记录创建后永不修改、永不删除
type Record struct {
	ID        uint
	SaleNo    string // 销售流水号(业务主键,全局唯一)
	BookID    uint   // 图书ID(引用关系,不控制图书生命周期)
	BookTitle string // 成交时的书名快照
	Quantity  int    // 销售数量
	UnitPrice int64  // 成交时的折后单价(分)
	Total     int64  // 成交总额(分) = Quantity * UnitPrice,创建时冻结
	CreatedAt time.Time
}

// NewRecord 创建销售记录(工厂方法)
// 业务规则:
// - 总额按图书"当前"折后价一次性计算,之后永不重算
// - 调用方必须保证quantity>0且库存已校验(由应用层事务编排)
func NewRecord(saleNo string, b *book.Book, quantity int) *Record {
	unitPrice := b.DiscountedPrice()
	return &Record{
		SaleNo:    saleNo,
		BookID:    b.ID,
		BookTitle: b.Title,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     unitPrice * int64(quantity),
		CreatedAt: time.Now(),
	}
}

// Totals 账本汇总
// TotalQuantity/TotalRevenue分别是所有销售记录的数量、金额之和
type Totals struct {
	TotalQuantity int64 // 累计销售数量
	TotalRevenue  int64 // 累计销售金额(分)
}
