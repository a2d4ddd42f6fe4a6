package catalog

import (
	"context"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 对外暴露page/page_size语义,内部换算为offset/limit
// 2. 按入库顺序(ID升序)返回,与货架陈列顺序一致
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int // 页码(从1开始)
	PageSize int // 每页数量
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List       []BookDTO `json:"list"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// Execute 执行列表查询用例
// 学习要点:
// 1. 参数默认值处理(page默认1, pageSize默认20)
// 2. 参数范围限制(pageSize最大100)
// 3. 超出末尾的页码返回空列表,total仍然有效
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20 // 默认每页20条
	}
	if req.PageSize > 100 {
		req.PageSize = 100 // 最大每页100条
	}

	// 2. page/page_size换算为offset/limit
	offset := (req.Page - 1) * req.PageSize

	// 3. 调用领域服务查询
	books, total, err := uc.bookService.ListBooks(ctx, offset, req.PageSize)
	if err != nil {
		return nil, err
	}

	// 4. 转换为DTO
	list := make([]BookDTO, len(books))
	for i, b := range books {
		list[i] = newBookDTO(b)
	}

	// 5. 计算总页数
	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
