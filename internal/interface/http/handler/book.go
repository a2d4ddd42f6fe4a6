package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Aliarcher/Bookstore-Management/internal/application/catalog"
	"github.com/Aliarcher/Bookstore-Management/internal/interface/http/dto"
	apperrors "github.com/Aliarcher/Bookstore-Management/pkg/errors"
	"github.com/Aliarcher/Bookstore-Management/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	addBookUseCase     *catalog.AddBookUseCase
	getBookUseCase     *catalog.GetBookUseCase
	listBooksUseCase   *catalog.ListBooksUseCase
	searchBooksUseCase *catalog.SearchBooksUseCase
	updateBookUseCase  *catalog.UpdateBookUseCase
	removeBookUseCase  *catalog.RemoveBookUseCase
	restockBookUseCase *catalog.RestockBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	addBookUseCase *catalog.AddBookUseCase,
	getBookUseCase *catalog.GetBookUseCase,
	listBooksUseCase *catalog.ListBooksUseCase,
	searchBooksUseCase *catalog.SearchBooksUseCase,
	updateBookUseCase *catalog.UpdateBookUseCase,
	removeBookUseCase *catalog.RemoveBookUseCase,
	restockBookUseCase *catalog.RestockBookUseCase,
) *BookHandler {
	return &BookHandler{
		addBookUseCase:     addBookUseCase,
		getBookUseCase:     getBookUseCase,
		listBooksUseCase:   listBooksUseCase,
		searchBooksUseCase: searchBooksUseCase,
		updateBookUseCase:  updateBookUseCase,
		removeBookUseCase:  removeBookUseCase,
		restockBookUseCase: restockBookUseCase,
	}
}

// parseIDParam 解析路径参数:id
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的图书ID")
		return 0, false
	}
	return uint(id), true
}

// newBookResponse 应用层DTO转HTTP DTO
func newBookResponse(b catalog.BookDTO) *dto.BookResponse {
	return &dto.BookResponse{
		ID:                  b.ID,
		Title:               b.Title,
		Author:              b.Author,
		Price:               b.Price,
		PriceYuan:           b.PriceYuan,
		Stock:               b.Stock,
		Sold:                b.Sold,
		Discount:            b.Discount,
		DiscountedPrice:     b.DiscountedPrice,
		DiscountedPriceYuan: b.DiscountedPriceYuan,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// AddBook 图书入库
// @Summary      图书入库
// @Description  新增一本图书,初始销量为0、无折扣
// @Tags         图书目录
// @Accept       json
// @Produce      json
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "参数错误(code=409xx)"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.addBookUseCase.Execute(c.Request.Context(), catalog.AddBookRequest{
		Title:  req.Title,
		Author: req.Author,
		Price:  req.Price,
		Stock:  req.Stock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Success(c, newBookResponse(result.Book))
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  根据ID查询图书,包含折后价与累计销量
// @Tags         图书目录
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "图书不存在(code=40402)"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), catalog.GetBookRequest{ID: id})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, newBookResponse(result.Book))
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按入库顺序分页查询
// @Tags         图书目录
// @Produce      json
// @Param        page query int false "页码(默认1)"
// @Param        page_size query int false "每页数量(默认20,最大100)"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), catalog.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.BookResponse, len(result.List))
	for i, b := range result.List {
		list[i] = newBookResponse(b)
	}

	response.SuccessWithPage(c, list, result.Total, result.Page, result.PageSize)
}

// SearchBooks 图书搜索
// @Summary      图书搜索
// @Description  按书名或作者做不区分大小写的子串匹配,空关键词匹配全部
// @Tags         图书目录
// @Produce      json
// @Param        field query string false "搜索字段:title或author(默认title)"
// @Param        keyword query string false "搜索关键词"
// @Success      200 {object} response.Response{data=dto.SearchBooksResponse}
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.searchBooksUseCase.Execute(c.Request.Context(), catalog.SearchBooksRequest{
		Field:   req.Field,
		Keyword: req.Keyword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookResponse, len(result.List))
	for i, b := range result.List {
		list[i] = *newBookResponse(b)
	}

	response.Success(c, &dto.SearchBooksResponse{
		List:  list,
		Total: result.Total,
	})
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  整体替换书名/作者/价格/库存/折扣,累计销量保持不变
// @Tags         图书目录
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "图书不存在(code=40402)或参数错误(code=409xx)"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), catalog.UpdateBookRequest{
		ID:       id,
		Title:    req.Title,
		Author:   req.Author,
		Price:    req.Price,
		Stock:    req.Stock,
		Discount: req.Discount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, newBookResponse(result.Book))
}

// RemoveBook 删除图书
// @Summary      删除图书
// @Description  从目录中删除图书,销售记录作为历史事实保留
// @Tags         图书目录
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "图书不存在(code=40402)"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) RemoveBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.removeBookUseCase.Execute(c.Request.Context(), catalog.RemoveBookRequest{ID: id}); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// RestockBook 图书补货
// @Summary      图书补货
// @Description  原子累加库存,补货数量必须大于0
// @Tags         图书目录
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.RestockBookRequest true "补货数量"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "图书不存在(code=40402)或数量非法(code=40903)"
// @Router       /api/v1/books/{id}/restock [post]
func (h *BookHandler) RestockBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.RestockBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.restockBookUseCase.Execute(c.Request.Context(), catalog.RestockBookRequest{
		ID:       id,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, newBookResponse(result.Book))
}
