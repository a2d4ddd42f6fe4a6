package catalog

import (
	"fmt"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
)

// BookDTO 图书DTO
// 设计说明:
// 1. 应用层统一的图书视图,与HTTP层解耦
// 2. 价格同时提供分(price)和元(price_yuan),折后价由服务端计算
type BookDTO struct {
	ID                  uint   `json:"id"`
	Title               string `json:"title"`
	Author              string `json:"author"`
	Price               int64  `json:"price"` // 原价(分)
	PriceYuan           string `json:"price_yuan"`
	Stock               int    `json:"stock"`
	Sold                int    `json:"sold"`
	Discount            int    `json:"discount"` // 折扣百分比[0,100]
	DiscountedPrice     int64  `json:"discounted_price"` // 折后价(分)
	DiscountedPriceYuan string `json:"discounted_price_yuan"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

// newBookDTO 实体转DTO
func newBookDTO(b *book.Book) BookDTO {
	return BookDTO{
		ID:                  b.ID,
		Title:               b.Title,
		Author:              b.Author,
		Price:               b.Price,
		PriceYuan:           formatPrice(b.Price),
		Stock:               b.Stock,
		Sold:                b.Sold,
		Discount:            b.Discount,
		DiscountedPrice:     b.DiscountedPrice(),
		DiscountedPriceYuan: formatPrice(b.DiscountedPrice()),
		CreatedAt:           b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:           b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
