package dto

// RecordSaleRequest HTTP记录销售请求
type RecordSaleRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"3"`
}

// RecordSaleResponse HTTP记录销售响应
type RecordSaleResponse struct {
	SaleID     uint   `json:"sale_id" example:"1"`
	SaleNo     string `json:"sale_no" example:"SAL1699248000123456"`
	BookID     uint   `json:"book_id" example:"1"`
	BookTitle  string `json:"book_title" example:"Go语言实战"`
	Quantity   int    `json:"quantity" example:"3"`
	UnitPrice  int64  `json:"unit_price" example:"4720"` // 折后单价(分)
	Total      int64  `json:"total" example:"14160"`     // 成交总额(分)
	TotalYuan  string `json:"total_yuan" example:"141.60"`
	StockAfter int    `json:"stock_after" example:"7"`
	SoldAfter  int    `json:"sold_after" example:"3"`
	CreatedAt  string `json:"created_at" example:"2024-11-06 10:30:00"`
}

// ApplyDiscountRequest HTTP应用折扣请求
// percent=0表示取消折扣,binding用min=0时required会拒绝零值,故用*int
type ApplyDiscountRequest struct {
	Percent *int `json:"percent" binding:"required,min=0,max=100" example:"20"`
}

// ApplyDiscountResponse HTTP应用折扣响应
type ApplyDiscountResponse struct {
	BookID              uint   `json:"book_id" example:"1"`
	Title               string `json:"title" example:"Go语言实战"`
	Discount            int    `json:"discount" example:"20"`
	Price               int64  `json:"price" example:"5900"`
	DiscountedPrice     int64  `json:"discounted_price" example:"4720"`
	DiscountedPriceYuan string `json:"discounted_price_yuan" example:"47.20"`
}

// ListSalesRequest HTTP销售历史请求
type ListSalesRequest struct {
	Page     int  `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int  `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	BookID   uint `form:"book_id" binding:"omitempty" example:"1"` // 可选:按图书过滤
}

// SaleListItem HTTP销售历史列表项
type SaleListItem struct {
	ID        uint   `json:"id" example:"1"`
	SaleNo    string `json:"sale_no" example:"SAL1699248000123456"`
	BookID    uint   `json:"book_id" example:"1"`
	BookTitle string `json:"book_title" example:"Go语言实战"` // 成交时的书名快照
	Quantity  int    `json:"quantity" example:"3"`
	UnitPrice int64  `json:"unit_price" example:"4720"`
	Total     int64  `json:"total" example:"14160"`
	TotalYuan string `json:"total_yuan" example:"141.60"`
	CreatedAt string `json:"created_at" example:"2024-11-06 10:30:00"`
}

// SalesReportResponse HTTP销售报表响应
type SalesReportResponse struct {
	TotalQuantity    int64  `json:"total_quantity" example:"3"`
	TotalRevenue     int64  `json:"total_revenue" example:"24000"` // 累计金额(分)
	TotalRevenueYuan string `json:"total_revenue_yuan" example:"240.00"`
}
