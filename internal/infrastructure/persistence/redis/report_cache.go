package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/sale"
	apperrors "github.com/Aliarcher/Bookstore-Management/pkg/errors"
)

// reportKey 销售报表缓存键
const reportKey = "sales:report"

// ReportCache 销售报表缓存
// 设计说明：
// 1. 报表是全账本聚合,读多写少,用短TTL缓存挡掉重复聚合查询
// 2. 每笔成交后主动失效(Invalidate),保证报表最多滞后一次缓存未命中
// 3. 缓存值是Totals的JSON序列化
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache 创建销售报表缓存
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ReportCache{client: client, ttl: ttl}
}

// Get 读取缓存的报表
// 返回(nil, nil)表示缓存未命中(不是错误)
func (c *ReportCache) Get(ctx context.Context) (*sale.Totals, error) {
	data, err := c.client.Get(ctx, reportKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // 未命中
		}
		return nil, apperrors.Wrap(err, "读取报表缓存失败")
	}

	var totals sale.Totals
	if err := json.Unmarshal(data, &totals); err != nil {
		return nil, fmt.Errorf("报表缓存反序列化失败: %w", err)
	}
	return &totals, nil
}

// Set 写入报表缓存
func (c *ReportCache) Set(ctx context.Context, totals *sale.Totals) error {
	data, err := json.Marshal(totals)
	if err != nil {
		return fmt.Errorf("报表缓存序列化失败: %w", err)
	}

	if err := c.client.Set(ctx, reportKey, data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入报表缓存失败")
	}
	return nil
}

// Invalidate 失效报表缓存(每笔成交后调用)
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, reportKey).Err(); err != nil {
		return apperrors.Wrap(err, "失效报表缓存失败")
	}
	return nil
}
