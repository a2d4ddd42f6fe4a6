package sales

import (
	"context"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/sale"
)

// ListSalesUseCase 销售历史查询用例
// 设计说明:账本只追加,历史按成交顺序(ID升序)返回;可按图书过滤
type ListSalesUseCase struct {
	saleRepo sale.Repository
}

// NewListSalesUseCase 创建销售历史查询用例
func NewListSalesUseCase(saleRepo sale.Repository) *ListSalesUseCase {
	return &ListSalesUseCase{
		saleRepo: saleRepo,
	}
}

// ListSalesRequest 销售历史查询请求DTO
type ListSalesRequest struct {
	Page     int  // 页码(从1开始)
	PageSize int  // 每页数量
	BookID   uint // 可选:只看某本图书的销售历史(0表示全部)
}

// SaleListItem 销售历史列表项DTO
type SaleListItem struct {
	ID        uint   `json:"id"`
	SaleNo    string `json:"sale_no"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"` // 成交时的书名快照
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // 成交时的折后单价(分)
	Total     int64  `json:"total"`      // 成交总额(分)
	TotalYuan string `json:"total_yuan"`
	CreatedAt string `json:"created_at"`
}

// ListSalesResponse 销售历史查询响应DTO
type ListSalesResponse struct {
	List       []SaleListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Execute 执行销售历史查询用例
func (uc *ListSalesUseCase) Execute(ctx context.Context, req ListSalesRequest) (*ListSalesResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	offset := (req.Page - 1) * req.PageSize

	// 2. 查询(可按图书过滤)
	var (
		records []*sale.Record
		total   int64
		err     error
	)
	if req.BookID > 0 {
		records, total, err = uc.saleRepo.ListByBookID(ctx, req.BookID, offset, req.PageSize)
	} else {
		records, total, err = uc.saleRepo.List(ctx, offset, req.PageSize)
	}
	if err != nil {
		return nil, err
	}

	// 3. 转换为DTO
	list := make([]SaleListItem, len(records))
	for i, r := range records {
		list[i] = SaleListItem{
			ID:        r.ID,
			SaleNo:    r.SaleNo,
			BookID:    r.BookID,
			BookTitle: r.BookTitle,
			Quantity:  r.Quantity,
			UnitPrice: r.UnitPrice,
			Total:     r.Total,
			TotalYuan: formatPrice(r.Total),
			CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	// 4. 计算总页数
	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListSalesResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
