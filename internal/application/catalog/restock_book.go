package catalog

import (
	"context"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
)

// RestockBookUseCase 图书补货用例
// 业务规则:补货数量必须>0,原子累加库存(UPDATE stock = stock + ?)
type RestockBookUseCase struct {
	bookService book.Service
}

// NewRestockBookUseCase 创建补货用例
func NewRestockBookUseCase(bookService book.Service) *RestockBookUseCase {
	return &RestockBookUseCase{
		bookService: bookService,
	}
}

// RestockBookRequest 补货请求DTO
type RestockBookRequest struct {
	ID       uint // 图书ID
	Quantity int  // 补货数量(必须>0)
}

// RestockBookResponse 补货响应DTO
type RestockBookResponse struct {
	Book BookDTO `json:"book"`
}

// Execute 执行补货用例
func (uc *RestockBookUseCase) Execute(ctx context.Context, req RestockBookRequest) (*RestockBookResponse, error) {
	b, err := uc.bookService.RestockBook(ctx, req.ID, req.Quantity)
	if err != nil {
		return nil, err
	}

	return &RestockBookResponse{Book: newBookDTO(b)}, nil
}
