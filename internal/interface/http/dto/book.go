package dto

import "fmt"

// AddBookRequest HTTP入库请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
type AddBookRequest struct {
	Title  string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Price  int64  `json:"price" binding:"min=0,max=99999999" example:"5900"` // 价格(分),59.00元
	Stock  int    `json:"stock" binding:"min=0" example:"100"`
}

// UpdateBookRequest HTTP更新请求
// 五个可变字段整体替换,累计销量(sold)由服务端保持不变
type UpdateBookRequest struct {
	Title    string `json:"title" binding:"required,max=200" example:"Go语言实战(第2版)"`
	Author   string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Price    int64  `json:"price" binding:"min=0,max=99999999" example:"6900"`
	Stock    int    `json:"stock" binding:"min=0" example:"80"`
	Discount int    `json:"discount" binding:"min=0,max=100" example:"20"` // 折扣百分比
}

// RestockBookRequest HTTP补货请求
type RestockBookRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=99999" example:"50"`
}

// BookResponse HTTP图书响应
// 用于单个图书详情返回
type BookResponse struct {
	ID                  uint   `json:"id" example:"1"`
	Title               string `json:"title" example:"Go语言实战"`
	Author              string `json:"author" example:"威廉·肯尼迪"`
	Price               int64  `json:"price" example:"5900"`       // 原价(分)
	PriceYuan           string `json:"price_yuan" example:"59.00"` // 原价(元),方便前端显示
	Stock               int    `json:"stock" example:"100"`
	Sold                int    `json:"sold" example:"3"`
	Discount            int    `json:"discount" example:"20"`               // 折扣百分比[0,100]
	DiscountedPrice     int64  `json:"discounted_price" example:"4720"`     // 折后价(分)
	DiscountedPriceYuan string `json:"discounted_price_yuan" example:"47.20"`
	CreatedAt           string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt           string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// SearchBooksRequest HTTP图书搜索请求
type SearchBooksRequest struct {
	Field   string `form:"field" binding:"omitempty,oneof=title author" example:"title"`
	Keyword string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
}

// SearchBooksResponse HTTP图书搜索响应
type SearchBooksResponse struct {
	List  []BookResponse `json:"list"`
	Total int            `json:"total" example:"3"`
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:5900分 → "59.00"
func FormatPriceYuan(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
