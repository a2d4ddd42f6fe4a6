package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	// 初始化指标
	InitMetrics()

	// 验证所有指标已创建
	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if SalesRecordedTotal == nil {
		t.Error("SalesRecordedTotal未初始化")
	}
	if RevenueFenTotal == nil {
		t.Error("RevenueFenTotal未初始化")
	}

	t.Log("✅ 所有指标初始化成功")
}

// TestCounter 测试Counter指标
func TestCounter(t *testing.T) {
	InitMetrics()

	// 初始值应为0
	initialValue := getCounterValue(t, BooksCreatedTotal)
	if initialValue != 0 {
		t.Errorf("Counter初始值错误: expected=0, got=%f", initialValue)
	}

	// 递增3次
	IncCounter(BooksCreatedTotal)
	IncCounter(BooksCreatedTotal)
	IncCounter(BooksCreatedTotal)

	// 验证值为3
	value := getCounterValue(t, BooksCreatedTotal)
	if value != 3 {
		t.Errorf("Counter值错误: expected=3, got=%f", value)
	}

	t.Log("✅ Counter测试通过")
}

// TestAddCounter 测试Counter按值累加（册数/金额类指标）
func TestAddCounter(t *testing.T) {
	InitMetrics()

	// 模拟两笔成交:3本8000分 + 2本5000分
	AddCounter(SoldUnitsTotal, 3)
	AddCounter(RevenueFenTotal, 24000)
	AddCounter(SoldUnitsTotal, 2)
	AddCounter(RevenueFenTotal, 10000)

	if value := getCounterValue(t, SoldUnitsTotal); value != 5 {
		t.Errorf("售出册数错误: expected=5, got=%f", value)
	}
	if value := getCounterValue(t, RevenueFenTotal); value != 34000 {
		t.Errorf("成交金额错误: expected=34000, got=%f", value)
	}

	t.Log("✅ AddCounter测试通过")
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	// 递增不同标签的Counter
	IncCounterVec(SalesFailedTotal, map[string]string{"reason": "insufficient_stock"})
	IncCounterVec(SalesFailedTotal, map[string]string{"reason": "not_found"})
	IncCounterVec(SalesFailedTotal, map[string]string{"reason": "insufficient_stock"})

	// 验证insufficient_stock的计数为2
	value := getCounterVecValue(t, SalesFailedTotal, map[string]string{"reason": "insufficient_stock"})
	if value != 2 {
		t.Errorf("CounterVec值错误: expected=2, got=%f", value)
	}

	t.Log("✅ CounterVec测试通过")
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()

	// 重置（清理之前测试的影响）
	SetGauge(HTTPRequestsInProgress, 0)

	// 递增
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	value := getGaugeValue(t, HTTPRequestsInProgress)
	if value != 2 {
		t.Errorf("Gauge递增后值错误: expected=2, got=%f", value)
	}

	// 递减
	DecGauge(HTTPRequestsInProgress)
	value = getGaugeValue(t, HTTPRequestsInProgress)
	if value != 1 {
		t.Errorf("Gauge递减后值错误: expected=1, got=%f", value)
	}

	// 设置值
	SetGauge(HTTPRequestsInProgress, 10)
	value = getGaugeValue(t, HTTPRequestsInProgress)
	if value != 10 {
		t.Errorf("Gauge设置后值错误: expected=10, got=%f", value)
	}

	t.Log("✅ Gauge测试通过")
}

// TestHistogram 测试Histogram指标
func TestHistogram(t *testing.T) {
	InitMetrics()

	// 记录多个观测值
	ObserveHistogram(SaleRecordingDuration, 0.005)
	ObserveHistogram(SaleRecordingDuration, 0.05)
	ObserveHistogram(SaleRecordingDuration, 0.1)
	ObserveHistogram(SaleRecordingDuration, 0.5)

	// 验证观测次数
	count := getHistogramCount(t, SaleRecordingDuration)
	if count != 4 {
		t.Errorf("Histogram观测次数错误: expected=4, got=%d", count)
	}

	// 验证总和
	sum := getHistogramSum(t, SaleRecordingDuration)
	expectedSum := 0.005 + 0.05 + 0.1 + 0.5
	if sum != expectedSum {
		t.Errorf("Histogram总和错误: expected=%f, got=%f", expectedSum, sum)
	}

	t.Logf("✅ Histogram测试通过, 观测次数=%d, 总和=%f", count, sum)
}

// TestRealWorldScenario 真实场景：模拟HTTP请求处理
func TestRealWorldScenario(t *testing.T) {
	InitMetrics()

	// 重置Gauge（清理之前测试的影响）
	SetGauge(HTTPRequestsInProgress, 0)

	// 模拟10个HTTP请求
	for i := 0; i < 10; i++ {
		IncGauge(HTTPRequestsInProgress)

		start := time.Now()
		time.Sleep(time.Millisecond)
		duration := time.Since(start).Seconds()

		ObserveHistogramVec(HTTPRequestDuration, map[string]string{
			"method": "POST",
			"path":   "/api/v1/sales",
		}, duration)

		IncCounterVec(HTTPRequestsTotal, map[string]string{
			"method": "POST",
			"path":   "/api/v1/sales",
			"status": "200",
		})

		DecGauge(HTTPRequestsInProgress)
	}

	// 验证正在处理的请求数（应为0）
	inProgress := getGaugeValue(t, HTTPRequestsInProgress)
	if inProgress != 0 {
		t.Errorf("正在处理的请求数错误: expected=0, got=%f", inProgress)
	}

	t.Log("✅ 真实场景测试通过")
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := counterVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

// 辅助函数：获取Histogram总和
func getHistogramSum(t *testing.T, histogram prometheus.Histogram) float64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleSum()
}
