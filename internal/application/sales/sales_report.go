package sales

import (
	"context"
	"log"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/sale"
	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/persistence/redis"
)

// SalesReportUseCase 销售报表用例
// 设计说明:
// 1. 报表是全账本聚合(SUM),读多写少,走"缓存优先→落库→回填"的旁路缓存
// 2. 缓存读写失败都不影响报表结果,直接落库查询
type SalesReportUseCase struct {
	saleRepo sale.Repository
	cache    *redis.ReportCache // 可为nil(无Redis时每次落库聚合)
}

// NewSalesReportUseCase 创建销售报表用例
func NewSalesReportUseCase(saleRepo sale.Repository, cache *redis.ReportCache) *SalesReportUseCase {
	return &SalesReportUseCase{
		saleRepo: saleRepo,
		cache:    cache,
	}
}

// SalesReportResponse 销售报表响应DTO
type SalesReportResponse struct {
	TotalQuantity    int64  `json:"total_quantity"`     // 累计销售数量
	TotalRevenue     int64  `json:"total_revenue"`      // 累计销售金额(分)
	TotalRevenueYuan string `json:"total_revenue_yuan"` // 累计销售金额(元)
}

// Execute 执行销售报表用例
// 账本为空时返回(0, 0),不是错误
func (uc *SalesReportUseCase) Execute(ctx context.Context) (*SalesReportResponse, error) {
	// 1. 缓存优先
	if uc.cache != nil {
		totals, err := uc.cache.Get(ctx)
		if err != nil {
			log.Printf("⚠️ 读取报表缓存失败(降级落库查询): %v", err)
		} else if totals != nil {
			return newSalesReportResponse(totals), nil
		}
	}

	// 2. 落库聚合
	totals, err := uc.saleRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存(尽力而为)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, totals); err != nil {
			log.Printf("⚠️ 写入报表缓存失败(不影响报表): %v", err)
		}
	}

	return newSalesReportResponse(totals), nil
}

func newSalesReportResponse(totals *sale.Totals) *SalesReportResponse {
	return &SalesReportResponse{
		TotalQuantity:    totals.TotalQuantity,
		TotalRevenue:     totals.TotalRevenue,
		TotalRevenueYuan: formatPrice(totals.TotalRevenue),
	}
}
