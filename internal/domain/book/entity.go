package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,库存/销量/折扣的不变量全部由实体方法维护
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. Discount是百分比折扣(0-100的整数),0表示不打折
// 4. Sold是累计销量,只增不减,只能通过Sell方法变化
type Book struct {
	ID        uint
	Title     string // 书名
	Author    string // 作者
	Price     int64  // 原价(单位:分,1元=100分)
	Stock     int    // 库存数量
	Sold      int    // 累计销量(只增不减)
	Discount  int    // 折扣百分比(0-100),0表示无折扣
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
// 业务规则:
// - 书名和作者不能为空(由领域服务校验后传入)
// - price必须>=0,stock必须>=0
// - 新书销量为0,折扣为0
func NewBook(title, author string, price int64, stock int) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		Price:     price,
		Stock:     stock,
		Sold:      0,
		Discount:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DiscountedPrice 计算折后价(分)
// 业务规则:折后价 = 原价 * (100 - 折扣) / 100
// 整数分运算,不足1分的部分舍去
func (b *Book) DiscountedPrice() int64 {
	return b.Price * int64(100-b.Discount) / 100
}

// Sell 卖出图书(领域行为)
// 业务规则:
// - quantity必须>0
// - 扣减后库存不能为负数(防止超卖)
// - 销量同步累加,保持sold只增不减
func (b *Book) Sell(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Stock < quantity {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	b.Sold += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// Restock 补货(领域行为)
// 业务规则:补货数量必须>0,这是库存增加的唯一途径
func (b *Book) Restock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// ApplyDiscount 设置折扣(领域行为)
// 业务规则:折扣百分比必须在[0,100]区间
// 只影响之后的折后价,已产生的销售记录金额不变
func (b *Book) ApplyDiscount(percentage int) error {
	if percentage < 0 || percentage > 100 {
		return ErrInvalidDiscount
	}
	b.Discount = percentage
	b.UpdatedAt = time.Now()
	return nil
}

// Replace 整体替换可变字段(用于更新操作)
// 业务规则:
// - 替换title/author/price/stock/discount五个字段
// - Sold是历史事实,更新操作不允许触碰
func (b *Book) Replace(title, author string, price int64, stock, discount int) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if author == "" {
		return ErrEmptyAuthor
	}
	if price < 0 {
		return ErrInvalidPrice
	}
	if stock < 0 {
		return ErrInvalidStock
	}
	if discount < 0 || discount > 100 {
		return ErrInvalidDiscount
	}
	b.Title = title
	b.Author = author
	b.Price = price
	b.Stock = stock
	b.Discount = discount
	b.UpdatedAt = time.Now()
	return nil
}
