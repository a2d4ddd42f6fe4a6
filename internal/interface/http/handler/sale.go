package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Aliarcher/Bookstore-Management/internal/application/sales"
	"github.com/Aliarcher/Bookstore-Management/internal/interface/http/dto"
	apperrors "github.com/Aliarcher/Bookstore-Management/pkg/errors"
	"github.com/Aliarcher/Bookstore-Management/pkg/response"
)

// SaleHandler 销售HTTP处理器
type SaleHandler struct {
	recordSaleUseCase    *sales.RecordSaleUseCase
	applyDiscountUseCase *sales.ApplyDiscountUseCase
	salesReportUseCase   *sales.SalesReportUseCase
	listSalesUseCase     *sales.ListSalesUseCase
}

// NewSaleHandler 创建销售处理器
func NewSaleHandler(
	recordSaleUseCase *sales.RecordSaleUseCase,
	applyDiscountUseCase *sales.ApplyDiscountUseCase,
	salesReportUseCase *sales.SalesReportUseCase,
	listSalesUseCase *sales.ListSalesUseCase,
) *SaleHandler {
	return &SaleHandler{
		recordSaleUseCase:    recordSaleUseCase,
		applyDiscountUseCase: applyDiscountUseCase,
		salesReportUseCase:   salesReportUseCase,
		listSalesUseCase:     listSalesUseCase,
	}
}

// RecordSale 记录销售
// @Summary      记录销售
// @Description  按当前折后价成交,原子扣减库存并追加账本记录,使用悲观锁防止超卖
// @Tags         销售账本
// @Accept       json
// @Produce      json
// @Param        request body dto.RecordSaleRequest true "销售信息"
// @Success      200 {object} response.Response{data=dto.RecordSaleResponse} "成交成功"
// @Failure      200 {object} response.Response "图书不存在(code=40402)"
// @Failure      200 {object} response.Response "库存不足(code=40001)"
// @Failure      200 {object} response.Response "数量非法(code=40903)"
// @Router       /api/v1/sales [post]
func (h *SaleHandler) RecordSale(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.recordSaleUseCase.Execute(c.Request.Context(), sales.RecordSaleRequest{
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Success(c, &dto.RecordSaleResponse{
		SaleID:     result.SaleID,
		SaleNo:     result.SaleNo,
		BookID:     result.BookID,
		BookTitle:  result.BookTitle,
		Quantity:   result.Quantity,
		UnitPrice:  result.UnitPrice,
		Total:      result.Total,
		TotalYuan:  result.TotalYuan,
		StockAfter: result.StockAfter,
		SoldAfter:  result.SoldAfter,
		CreatedAt:  result.CreatedAt,
	})
}

// ApplyDiscount 应用折扣
// @Summary      应用折扣
// @Description  设置图书折扣百分比[0,100],只影响之后的成交价,0表示取消折扣
// @Tags         销售账本
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.ApplyDiscountRequest true "折扣百分比"
// @Success      200 {object} response.Response{data=dto.ApplyDiscountResponse}
// @Failure      200 {object} response.Response "图书不存在(code=40402)或折扣非法(code=40902)"
// @Router       /api/v1/books/{id}/discount [post]
func (h *SaleHandler) ApplyDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.applyDiscountUseCase.Execute(c.Request.Context(), sales.ApplyDiscountRequest{
		BookID:  id,
		Percent: *req.Percent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ApplyDiscountResponse{
		BookID:              result.BookID,
		Title:               result.Title,
		Discount:            result.Discount,
		Price:               result.Price,
		DiscountedPrice:     result.DiscountedPrice,
		DiscountedPriceYuan: result.DiscountedPriceYuan,
	})
}

// SalesReport 销售报表
// @Summary      销售报表
// @Description  汇总全部销售记录的数量与金额,账本为空时返回(0,0)
// @Tags         销售账本
// @Produce      json
// @Success      200 {object} response.Response{data=dto.SalesReportResponse}
// @Router       /api/v1/sales/report [get]
func (h *SaleHandler) SalesReport(c *gin.Context) {
	result, err := h.salesReportUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.SalesReportResponse{
		TotalQuantity:    result.TotalQuantity,
		TotalRevenue:     result.TotalRevenue,
		TotalRevenueYuan: result.TotalRevenueYuan,
	})
}

// ListSales 销售历史
// @Summary      销售历史
// @Description  按成交顺序分页查询账本,可用book_id过滤
// @Tags         销售账本
// @Produce      json
// @Param        page query int false "页码(默认1)"
// @Param        page_size query int false "每页数量(默认20,最大100)"
// @Param        book_id query int false "按图书过滤"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	var req dto.ListSalesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listSalesUseCase.Execute(c.Request.Context(), sales.ListSalesRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		BookID:   req.BookID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.SaleListItem, len(result.List))
	for i, r := range result.List {
		list[i] = dto.SaleListItem{
			ID:        r.ID,
			SaleNo:    r.SaleNo,
			BookID:    r.BookID,
			BookTitle: r.BookTitle,
			Quantity:  r.Quantity,
			UnitPrice: r.UnitPrice,
			Total:     r.Total,
			TotalYuan: r.TotalYuan,
			CreatedAt: r.CreatedAt,
		}
	}

	response.SuccessWithPage(c, list, result.Total, result.Page, result.PageSize)
}
