package catalog

import (
	"context"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
)

// GetBookUseCase 图书详情查询用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
	}
}

// GetBookRequest 详情查询请求DTO
type GetBookRequest struct {
	ID uint // 图书ID
}

// GetBookResponse 详情查询响应DTO
type GetBookResponse struct {
	Book BookDTO `json:"book"`
}

// Execute 执行详情查询用例
// 图书不存在时返回ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, req GetBookRequest) (*GetBookResponse, error) {
	b, err := uc.bookService.GetBook(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &GetBookResponse{Book: newBookDTO(b)}, nil
}
