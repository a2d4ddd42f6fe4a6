package sales

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
	"github.com/Aliarcher/Bookstore-Management/internal/domain/sale"
	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/persistence"
	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/persistence/redis"
	apperrors "github.com/Aliarcher/Bookstore-Management/pkg/errors"
	"github.com/Aliarcher/Bookstore-Management/pkg/metrics"
)

// EventPublisher 领域事件发布接口
// *mq.Publisher实现了该接口;为nil时跳过发布(如本地内存模式)
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// SaleRecordedEvent 成交事件(发布到bookstore.events)
type SaleRecordedEvent struct {
	SaleNo    string `json:"sale_no"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // 折后单价(分)
	Total     int64  `json:"total"`      // 成交总额(分)
}

// RecordSaleUseCase 记录销售用例
// 教学要点:这是整个项目最核心的用例
// 涉及:事务处理、并发控制、价格快照
type RecordSaleUseCase struct {
	bookRepo  book.Repository
	saleRepo  sale.Repository
	txManager persistence.TxManager
	cache     *redis.ReportCache // 可为nil(无Redis时跳过失效)
	publisher EventPublisher     // 可为nil(无MQ时跳过发布)
}

// NewRecordSaleUseCase 创建记录销售用例
func NewRecordSaleUseCase(
	bookRepo book.Repository,
	saleRepo sale.Repository,
	txManager persistence.TxManager,
	cache *redis.ReportCache,
	publisher EventPublisher,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		bookRepo:  bookRepo,
		saleRepo:  saleRepo,
		txManager: txManager,
		cache:     cache,
		publisher: publisher,
	}
}

// RecordSaleRequest 记录销售请求DTO
type RecordSaleRequest struct {
	BookID   uint // 图书ID
	Quantity int  // 销售数量(必须>0)
}

// RecordSaleResponse 记录销售响应DTO
type RecordSaleResponse struct {
	SaleID        uint   `json:"sale_id"`
	SaleNo        string `json:"sale_no"`
	BookID        uint   `json:"book_id"`
	BookTitle     string `json:"book_title"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int64  `json:"unit_price"` // 折后单价(分)
	Total         int64  `json:"total"`      // 成交总额(分)
	TotalYuan     string `json:"total_yuan"`
	StockAfter    int    `json:"stock_after"` // 成交后剩余库存
	SoldAfter     int    `json:"sold_after"`  // 成交后累计销量
	CreatedAt     string `json:"created_at"`
}

// Execute 执行记录销售用例
// 教学重点:防止超卖的完整流程
//
// 核心问题:库存超卖
// 场景:图书库存10本,100人同时购买
// 错误实现:先查库存再判断再扣减,100个请求都会通过判断(超卖90本!)
//
// 正确实现:悲观锁 + 原子扣减
//  1. SELECT FOR UPDATE 锁定图书行
//  2. 判断库存是否充足
//  3. 按"此刻"的折后价冻结成交金额,追加销售记录
//  4. 原子扣减库存、累加销量(UPDATE ... WHERE stock >= ?)
//  5. COMMIT释放锁;任何一步失败则整体回滚,库存与账本都不变
func (uc *RecordSaleUseCase) Execute(ctx context.Context, req RecordSaleRequest) (*RecordSaleResponse, error) {
	start := time.Now()

	// 1. 参数校验
	if req.Quantity <= 0 {
		uc.observeFailure(sale.ErrInvalidQuantity)
		return nil, sale.ErrInvalidQuantity
	}

	// 2. 事务内完成"锁定→校验→记账→扣减"
	var (
		record *sale.Record
		b      *book.Book
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定图书行(悲观锁,防止并发超卖)
		var err error
		b, err = uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		// 锁定后检查库存,否则可能并发扣减导致超卖
		if b.Stock < req.Quantity {
			return fmt.Errorf("图书《%s》库存不足,当前库存:%d,需要:%d: %w",
				b.Title, b.Stock, req.Quantity, book.ErrInsufficientStock)
		}

		// 追加销售记录(冻结折后价快照)
		record = sale.NewRecord(sale.GenerateSaleNo(), b, req.Quantity)
		if err := uc.saleRepo.Create(txCtx, record); err != nil {
			return err
		}

		// 原子扣减库存、累加销量
		if err := uc.bookRepo.ApplySale(txCtx, req.BookID, req.Quantity); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		uc.observeFailure(err)
		return nil, err
	}

	// 3. 事务提交后的旁路动作(尽力而为,失败只记日志)
	uc.afterCommit(ctx, record)

	// 4. 业务指标
	metrics.IncCounter(metrics.SalesRecordedTotal)
	metrics.AddCounter(metrics.SoldUnitsTotal, float64(record.Quantity))
	metrics.AddCounter(metrics.RevenueFenTotal, float64(record.Total))
	metrics.ObserveHistogram(metrics.SaleRecordingDuration, time.Since(start).Seconds())

	return &RecordSaleResponse{
		SaleID:     record.ID,
		SaleNo:     record.SaleNo,
		BookID:     record.BookID,
		BookTitle:  record.BookTitle,
		Quantity:   record.Quantity,
		UnitPrice:  record.UnitPrice,
		Total:      record.Total,
		TotalYuan:  formatPrice(record.Total),
		StockAfter: b.Stock - record.Quantity,
		SoldAfter:  b.Sold + record.Quantity,
		CreatedAt:  record.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// afterCommit 事务提交后的旁路动作
// 缓存失效与事件发布都不影响成交结果:失败只记日志
func (uc *RecordSaleUseCase) afterCommit(ctx context.Context, record *sale.Record) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			log.Printf("⚠️ 报表缓存失效失败(不影响成交): %v", err)
		}
	}

	if uc.publisher != nil {
		event := SaleRecordedEvent{
			SaleNo:    record.SaleNo,
			BookID:    record.BookID,
			BookTitle: record.BookTitle,
			Quantity:  record.Quantity,
			UnitPrice: record.UnitPrice,
			Total:     record.Total,
		}
		if err := uc.publisher.Publish("sale.recorded", event); err != nil {
			log.Printf("⚠️ 成交事件发布失败(不影响成交): %v", err)
		}
	}
}

// observeFailure 记录失败指标(按失败原因分类)
func (uc *RecordSaleUseCase) observeFailure(err error) {
	reason := "internal"
	switch {
	case apperrors.IsInsufficientStock(err):
		reason = "insufficient_stock"
	case apperrors.IsNotFound(err):
		reason = "not_found"
	case apperrors.IsValidation(err):
		reason = "invalid_params"
	}
	metrics.IncCounterVec(metrics.SalesFailedTotal, map[string]string{"reason": reason})
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
