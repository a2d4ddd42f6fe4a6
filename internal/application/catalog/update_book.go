package catalog

import (
	"context"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
)

// UpdateBookUseCase 图书更新用例
// 业务规则:五个可变字段整体替换,累计销量(sold)保持不变
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
	}
}

// UpdateBookRequest 更新请求DTO
type UpdateBookRequest struct {
	ID       uint   // 图书ID
	Title    string // 书名
	Author   string // 作者
	Price    int64  // 原价(分)
	Stock    int    // 库存
	Discount int    // 折扣百分比[0,100]
}

// UpdateBookResponse 更新响应DTO
type UpdateBookResponse struct {
	Book BookDTO `json:"book"`
}

// Execute 执行更新用例
// 校验失败时图书保持原状(先校验后落库)
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*UpdateBookResponse, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.ID, req.Title, req.Author, req.Price, req.Stock, req.Discount)
	if err != nil {
		return nil, err
	}

	return &UpdateBookResponse{Book: newBookDTO(b)}, nil
}
