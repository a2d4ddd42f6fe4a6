package catalog

import (
	"context"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
)

// SearchBooksUseCase 图书搜索用例
// 设计说明:
// 1. 按书名或作者做不区分大小写的子串匹配
// 2. 空关键词匹配全部图书(与列表查询行为一致)
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		bookService: bookService,
	}
}

// SearchBooksRequest 搜索请求DTO
type SearchBooksRequest struct {
	Field   string // 搜索字段:title或author(默认title)
	Keyword string // 搜索关键词(子串匹配,不区分大小写)
}

// SearchBooksResponse 搜索响应DTO
type SearchBooksResponse struct {
	List  []BookDTO `json:"list"`
	Total int       `json:"total"`
}

// Execute 执行搜索用例
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (*SearchBooksResponse, error) {
	// 1. 解析搜索字段,无效字段回落到按书名搜索
	field := book.SearchByTitle
	if req.Field == string(book.SearchByAuthor) {
		field = book.SearchByAuthor
	}

	// 2. 调用领域服务搜索
	books, err := uc.bookService.SearchBooks(ctx, field, req.Keyword)
	if err != nil {
		return nil, err
	}

	// 3. 转换为DTO
	list := make([]BookDTO, len(books))
	for i, b := range books {
		list[i] = newBookDTO(b)
	}

	return &SearchBooksResponse{
		List:  list,
		Total: len(list),
	}, nil
}
