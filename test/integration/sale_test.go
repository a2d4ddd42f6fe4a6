package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 销售模块集成测试
//
// 测试场景覆盖:
// 1. 折扣+成交的完整流程(折后价快照、库存扣减)
// 2. 库存不足时拒绝成交且状态不变
// 3. 销售历史与报表

// TestSaleFlow 测试折扣+成交完整流程
// 100.00元的书打8折卖3本:折后单价80.00元,总额240.00元
func TestSaleFlow(t *testing.T) {
	requireServer(t)

	created := AddTestBook(t, GenerateTestTitle("成交流程"), 10000, 10)

	// 1. 打8折
	discountResp := PostJSON(t, fmt.Sprintf("%s/books/%d/discount", BaseURL, created.ID), map[string]interface{}{
		"percent": 20,
	})
	require.Equal(t, 0, discountResp.Code, "打折失败: %s", discountResp.Message)

	var discount DiscountData
	require.NoError(t, json.Unmarshal(discountResp.Data, &discount))
	assert.Equal(t, int64(8000), discount.DiscountedPrice)

	// 2. 卖出3本
	saleResp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
		"book_id":  created.ID,
		"quantity": 3,
	})
	require.Equal(t, 0, saleResp.Code, "成交失败: %s", saleResp.Message)

	var sale SaleData
	require.NoError(t, json.Unmarshal(saleResp.Data, &sale))
	assert.NotEmpty(t, sale.SaleNo)
	assert.Equal(t, int64(8000), sale.UnitPrice, "按折后价成交")
	assert.Equal(t, int64(24000), sale.Total)
	assert.Equal(t, "240.00", sale.TotalYuan)
	assert.Equal(t, 7, sale.StockAfter)
	assert.Equal(t, 3, sale.SoldAfter)

	t.Logf("✓ 成交成功,流水号: %s", sale.SaleNo)

	// 3. 详情确认库存与销量落库
	getResp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID))
	require.Equal(t, 0, getResp.Code)

	var data BookData
	require.NoError(t, json.Unmarshal(getResp.Data, &data))
	assert.Equal(t, 7, data.Stock)
	assert.Equal(t, 3, data.Sold)
}

// TestSaleInsufficientStock 测试库存不足
func TestSaleInsufficientStock(t *testing.T) {
	requireServer(t)

	created := AddTestBook(t, GenerateTestTitle("库存不足"), 100, 2)

	resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
		"book_id":  created.ID,
		"quantity": 3,
	})

	assert.Equal(t, 40001, resp.Code, "应该返回库存不足错误码")

	// 失败后状态不变
	getResp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID))
	require.Equal(t, 0, getResp.Code)

	var data BookData
	require.NoError(t, json.Unmarshal(getResp.Data, &data))
	assert.Equal(t, 2, data.Stock)
	assert.Equal(t, 0, data.Sold)
}

// TestSaleValidation 测试成交参数验证
func TestSaleValidation(t *testing.T) {
	requireServer(t)

	t.Run("数量必须为正", func(t *testing.T) {
		created := AddTestBook(t, GenerateTestTitle("参数验证"), 100, 5)

		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  created.ID,
			"quantity": 0,
		})

		assert.NotEqual(t, 0, resp.Code)
	})

	t.Run("图书不存在", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  99999999,
			"quantity": 1,
		})

		assert.Equal(t, 40402, resp.Code)
	})
}

// TestDiscountValidation 测试折扣范围验证
func TestDiscountValidation(t *testing.T) {
	requireServer(t)

	created := AddTestBook(t, GenerateTestTitle("折扣验证"), 10000, 5)

	t.Run("超出范围拒绝", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/books/%d/discount", BaseURL, created.ID), map[string]interface{}{
			"percent": 101,
		})

		assert.NotEqual(t, 0, resp.Code)
	})

	t.Run("percent为0取消折扣", func(t *testing.T) {
		// 先打折再取消
		resp := PostJSON(t, fmt.Sprintf("%s/books/%d/discount", BaseURL, created.ID), map[string]interface{}{
			"percent": 30,
		})
		require.Equal(t, 0, resp.Code)

		resp = PostJSON(t, fmt.Sprintf("%s/books/%d/discount", BaseURL, created.ID), map[string]interface{}{
			"percent": 0,
		})
		require.Equal(t, 0, resp.Code, "percent=0是合法输入: %s", resp.Message)

		var discount DiscountData
		require.NoError(t, json.Unmarshal(resp.Data, &discount))
		assert.Equal(t, 0, discount.Discount)
		assert.Equal(t, int64(10000), discount.DiscountedPrice, "取消折扣后恢复原价")
	})
}

// TestSalesHistoryAndReport 测试销售历史与报表
func TestSalesHistoryAndReport(t *testing.T) {
	requireServer(t)

	created := AddTestBook(t, GenerateTestTitle("历史报表"), 5000, 10)

	// 先记录报表基线(其他测试可能已产生销售)
	baseResp := GetJSON(t, BaseURL+"/sales/report")
	require.Equal(t, 0, baseResp.Code)
	var baseline ReportData
	require.NoError(t, json.Unmarshal(baseResp.Data, &baseline))

	// 成交2笔
	for i := 0; i < 2; i++ {
		resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
			"book_id":  created.ID,
			"quantity": 1,
		})
		require.Equal(t, 0, resp.Code)
	}

	t.Run("按图书过滤历史", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/sales?book_id=%d", BaseURL, created.ID))

		assert.Equal(t, 0, resp.Code)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.Equal(t, int64(2), page.Total)

		var list []SaleData
		require.NoError(t, json.Unmarshal(page.List, &list))
		require.Len(t, list, 2)
		assert.Equal(t, created.Title, list[0].BookTitle, "保留成交时的书名快照")
	})

	t.Run("报表在基线上增加", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/sales/report")

		assert.Equal(t, 0, resp.Code)

		var report ReportData
		require.NoError(t, json.Unmarshal(resp.Data, &report))
		assert.Equal(t, baseline.TotalQuantity+2, report.TotalQuantity)
		assert.Equal(t, baseline.TotalRevenue+10000, report.TotalRevenue, "2笔 * 5000分")
	})
}
