package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aliarcher/Bookstore-Management/pkg/metrics"
)

// Metrics HTTP指标采集中间件
// 采集:请求总数(按方法/路径/状态码)、耗时分布、正在处理的请求数
// 路径维度使用路由模板(c.FullPath)而非原始URL,避免/books/1、/books/2撑爆标签基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		defer metrics.DecGauge(metrics.HTTPRequestsInProgress)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unknown" // 未匹配到路由(404)
		}

		labels := map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, labels)
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
