package catalog

import (
	"context"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
	"github.com/Aliarcher/Bookstore-Management/pkg/metrics"
)

// RemoveBookUseCase 图书删除用例
// 业务规则:销售记录是历史事实,不随图书删除(账本只追加)
type RemoveBookUseCase struct {
	bookService book.Service
}

// NewRemoveBookUseCase 创建删除用例
func NewRemoveBookUseCase(bookService book.Service) *RemoveBookUseCase {
	return &RemoveBookUseCase{
		bookService: bookService,
	}
}

// RemoveBookRequest 删除请求DTO
type RemoveBookRequest struct {
	ID uint // 图书ID
}

// Execute 执行删除用例
// 图书不存在时返回ErrBookNotFound
func (uc *RemoveBookUseCase) Execute(ctx context.Context, req RemoveBookRequest) error {
	if err := uc.bookService.RemoveBook(ctx, req.ID); err != nil {
		return err
	}

	metrics.IncCounter(metrics.BooksDeletedTotal)
	return nil
}
