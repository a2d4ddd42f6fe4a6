package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书目录集成测试
//
// 测试场景覆盖:
// 1. 入库/详情/更新/删除/补货
// 2. 列表分页与搜索
// 3. 参数验证(书名必填、价格/库存非负)

// TestBookAdd 测试图书入库
func TestBookAdd(t *testing.T) {
	requireServer(t)

	t.Run("正常入库", func(t *testing.T) {
		title := GenerateTestTitle("Go语言实战")
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":  title,
			"author": "威廉·肯尼迪",
			"price":  6900, // 69.00元
			"stock":  100,
		})

		assert.Equal(t, 0, resp.Code, "入库应该成功: %s", resp.Message)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.ID)
		assert.Equal(t, title, data.Title)
		assert.Equal(t, int64(6900), data.Price)
		assert.Equal(t, "69.00", data.PriceYuan)
		assert.Equal(t, 100, data.Stock)
		assert.Equal(t, 0, data.Sold)

		t.Logf("✓ 入库成功,图书ID: %d", data.ID)
	})

	t.Run("书名必填", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"author": "作者",
			"price":  100,
			"stock":  1,
		})

		assert.NotEqual(t, 0, resp.Code, "缺少书名应该失败")
	})

	t.Run("价格不能为负", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":  GenerateTestTitle("负价格"),
			"author": "作者",
			"price":  -1,
			"stock":  1,
		})

		assert.NotEqual(t, 0, resp.Code, "负价格应该失败")
	})
}

// TestBookGet 测试图书详情查询
func TestBookGet(t *testing.T) {
	requireServer(t)

	created := AddTestBook(t, GenerateTestTitle("详情查询"), 5900, 10)

	t.Run("查询存在的图书", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID))

		assert.Equal(t, 0, resp.Code)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, created.ID, data.ID)
		assert.Equal(t, created.Title, data.Title)
	})

	t.Run("查询不存在的图书", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/99999999")

		assert.Equal(t, 40402, resp.Code, "应该返回图书不存在错误码")
	})

	t.Run("非法ID", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/abc")

		assert.NotEqual(t, 0, resp.Code)
	})
}

// TestBookList 测试列表分页
func TestBookList(t *testing.T) {
	requireServer(t)

	// 造3本,保证列表非空
	for i := 0; i < 3; i++ {
		AddTestBook(t, GenerateTestTitle(fmt.Sprintf("列表%d", i)), 100, 1)
	}

	t.Run("默认分页", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books")

		assert.Equal(t, 0, resp.Code)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.PageSize)
		assert.GreaterOrEqual(t, page.Total, int64(3))
	})

	t.Run("自定义分页", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books?page=1&page_size=2")

		assert.Equal(t, 0, resp.Code)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.Equal(t, 2, page.PageSize)

		var list []BookData
		require.NoError(t, json.Unmarshal(page.List, &list))
		assert.LessOrEqual(t, len(list), 2)
	})
}

// TestBookSearch 测试搜索
func TestBookSearch(t *testing.T) {
	requireServer(t)

	title := GenerateTestTitle("独一无二的搜索标题")
	AddTestBook(t, title, 100, 1)

	t.Run("按书名搜索命中", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/search?field=title&keyword="+title)

		assert.Equal(t, 0, resp.Code)

		var result struct {
			List  []BookData `json:"list"`
			Total int        `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		require.Equal(t, 1, result.Total)
		assert.Equal(t, title, result.List[0].Title)
	})

	t.Run("无匹配返回空列表", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/search?keyword=绝不可能匹配的关键词xyz")

		assert.Equal(t, 0, resp.Code)

		var result struct {
			List  []BookData `json:"list"`
			Total int        `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, 0, result.Total)
	})
}

// TestBookUpdate 测试更新与删除
func TestBookUpdate(t *testing.T) {
	requireServer(t)

	created := AddTestBook(t, GenerateTestTitle("更新前"), 100, 5)

	t.Run("整体替换字段", func(t *testing.T) {
		newTitle := GenerateTestTitle("更新后")
		resp := PutJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID), map[string]interface{}{
			"title":    newTitle,
			"author":   "新作者",
			"price":    200,
			"stock":    8,
			"discount": 10,
		})

		assert.Equal(t, 0, resp.Code, "更新失败: %s", resp.Message)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, newTitle, data.Title)
		assert.Equal(t, 10, data.Discount)
		assert.Equal(t, int64(180), data.DiscountedPrice)
	})

	t.Run("删除后查询不到", func(t *testing.T) {
		resp := DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID))
		assert.Equal(t, 0, resp.Code)

		getResp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID))
		assert.Equal(t, 40402, getResp.Code)
	})
}

// TestBookRestock 测试补货
func TestBookRestock(t *testing.T) {
	requireServer(t)

	created := AddTestBook(t, GenerateTestTitle("补货"), 100, 5)

	t.Run("补货累加库存", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/books/%d/restock", BaseURL, created.ID), map[string]interface{}{
			"quantity": 10,
		})

		assert.Equal(t, 0, resp.Code)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 15, data.Stock)
	})

	t.Run("补货数量必须为正", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/books/%d/restock", BaseURL, created.ID), map[string]interface{}{
			"quantity": 0,
		})

		assert.NotEqual(t, 0, resp.Code)
	})
}
