// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型速记：
// - Counter（计数器）：只增不减的累计值，如请求总数、成交笔数
// - Gauge（仪表盘）：可增可减的瞬时值，如正在处理的请求数
// - Histogram（直方图）：观测值的分布，如请求耗时（自动计算P50/P90/P99）
//
// 命名规范：
// - Counter以`_total`结尾；Histogram以单位结尾（`_seconds`、`_fen`）
// - 标签只用低基数维度（method/path/status），不要用book_id这类高基数标签
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//	...
//	metrics.IncCounter(metrics.SalesRecordedTotal)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/books）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 目录业务指标

	// BooksCreatedTotal 图书入库总数（Counter）
	BooksCreatedTotal prometheus.Counter

	// BooksDeletedTotal 图书删除总数（Counter）
	BooksDeletedTotal prometheus.Counter

	// 销售业务指标

	// SalesRecordedTotal 成交笔数（Counter）
	SalesRecordedTotal prometheus.Counter

	// SalesFailedTotal 销售失败总数（Counter）
	// 标签：reason（insufficient_stock/not_found/invalid_params/internal）
	SalesFailedTotal *prometheus.CounterVec

	// SaleRecordingDuration 单笔销售处理耗时（Histogram）
	SaleRecordingDuration prometheus.Histogram

	// SoldUnitsTotal 累计售出册数（Counter）
	SoldUnitsTotal prometheus.Counter

	// RevenueFenTotal 累计成交金额（Counter，单位:分）
	RevenueFenTotal prometheus.Counter
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 目录业务指标
	BooksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "books_created_total",
			Help: "图书入库总数",
		},
	)

	BooksDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "books_deleted_total",
			Help: "图书删除总数",
		},
	)

	// 销售业务指标
	SalesRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_recorded_total",
			Help: "成交笔数",
		},
	)

	SalesFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_failed_total",
			Help: "销售失败总数",
		},
		[]string{"reason"},
	)

	SaleRecordingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "sale_recording_duration_seconds",
			Help: "单笔销售处理耗时（秒）",
			// 单笔销售是一次本地事务,耗时集中在10ms-1s
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	SoldUnitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sold_units_total",
			Help: "累计售出册数",
		},
	)

	RevenueFenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "revenue_fen_total",
			Help: "累计成交金额（分）",
		},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// AddCounter Counter累加指定值（用于册数/金额）
func AddCounter(counter prometheus.Counter, value float64) {
	counter.Add(value)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
