package catalog

import (
	"context"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
	"github.com/Aliarcher/Bookstore-Management/pkg/metrics"
)

// AddBookUseCase 图书入库用例
// 设计说明:
// 1. 应用层负责用例编排,业务规则校验由领域服务完成
// 2. 输入输出使用DTO,与HTTP层解耦
type AddBookUseCase struct {
	bookService book.Service
}

// NewAddBookUseCase 创建入库用例
func NewAddBookUseCase(bookService book.Service) *AddBookUseCase {
	return &AddBookUseCase{
		bookService: bookService,
	}
}

// AddBookRequest 入库请求DTO
type AddBookRequest struct {
	Title  string // 书名
	Author string // 作者
	Price  int64  // 原价(分)
	Stock  int    // 初始库存
}

// AddBookResponse 入库响应DTO
type AddBookResponse struct {
	Book BookDTO `json:"book"`
}

// Execute 执行入库用例
// 领域服务会处理:书名/作者非空、价格/库存非负等校验
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*AddBookResponse, error) {
	b, err := uc.bookService.AddBook(ctx, req.Title, req.Author, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.BooksCreatedTotal)

	return &AddBookResponse{Book: newBookDTO(b)}, nil
}
