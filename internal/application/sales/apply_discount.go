package sales

import (
	"context"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/persistence"
)

// ApplyDiscountUseCase 应用折扣用例
// 设计说明:
// 1. 折扣只影响"之后"的成交价,已记账的销售记录不回溯
// 2. 折扣属于销售策略,故放在sales用例包而非catalog
// 3. 与记录销售同一把锁:锁定行内读改写,并发成交不会被折扣操作
//    用旧副本覆盖回去(stock/sold必须反映锁定时刻的值)
type ApplyDiscountUseCase struct {
	bookRepo  book.Repository
	txManager persistence.TxManager
}

// NewApplyDiscountUseCase 创建应用折扣用例
func NewApplyDiscountUseCase(bookRepo book.Repository, txManager persistence.TxManager) *ApplyDiscountUseCase {
	return &ApplyDiscountUseCase{
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// ApplyDiscountRequest 应用折扣请求DTO
type ApplyDiscountRequest struct {
	BookID  uint // 图书ID
	Percent int  // 折扣百分比[0,100],0表示取消折扣
}

// ApplyDiscountResponse 应用折扣响应DTO
type ApplyDiscountResponse struct {
	BookID              uint   `json:"book_id"`
	Title               string `json:"title"`
	Discount            int    `json:"discount"`
	Price               int64  `json:"price"`            // 原价(分)
	DiscountedPrice     int64  `json:"discounted_price"` // 折后价(分)
	DiscountedPriceYuan string `json:"discounted_price_yuan"`
}

// Execute 执行应用折扣用例
// 边界规则:percent不在[0,100]内返回ErrInvalidDiscount,折扣保持原值
func (uc *ApplyDiscountUseCase) Execute(ctx context.Context, req ApplyDiscountRequest) (*ApplyDiscountResponse, error) {
	var b *book.Book

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定图书行(不存在返回ErrBookNotFound)
		locked, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		// 2. 实体校验并应用折扣
		if err := locked.ApplyDiscount(req.Percent); err != nil {
			return err
		}

		// 3. 持久化(锁内写回,Update不触碰sold)
		if err := uc.bookRepo.Update(txCtx, locked); err != nil {
			return err
		}

		b = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ApplyDiscountResponse{
		BookID:              b.ID,
		Title:               b.Title,
		Discount:            b.Discount,
		Price:               b.Price,
		DiscountedPrice:     b.DiscountedPrice(),
		DiscountedPriceYuan: formatPrice(b.DiscountedPrice()),
	}, nil
}
