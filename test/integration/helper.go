package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 需要先启动服务(go run ./cmd/api),再带INTEGRATION_TEST=1运行:
//
//	INTEGRATION_TEST=1 go test ./test/integration/...

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// requireServer 未开启集成测试开关时跳过
func requireServer(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("跳过集成测试:未设置INTEGRATION_TEST(需要先启动API服务)")
	}
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BookData 图书响应数据
type BookData struct {
	ID                  uint   `json:"id"`
	Title               string `json:"title"`
	Author              string `json:"author"`
	Price               int64  `json:"price"`
	PriceYuan           string `json:"price_yuan"`
	Stock               int    `json:"stock"`
	Sold                int    `json:"sold"`
	Discount            int    `json:"discount"`
	DiscountedPrice     int64  `json:"discounted_price"`
	DiscountedPriceYuan string `json:"discounted_price_yuan"`
}

// PageData 分页响应数据
type PageData struct {
	List       json.RawMessage `json:"list"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// SaleData 成交响应数据
type SaleData struct {
	SaleID     uint   `json:"sale_id"`
	SaleNo     string `json:"sale_no"`
	BookID     uint   `json:"book_id"`
	BookTitle  string `json:"book_title"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	Total      int64  `json:"total"`
	TotalYuan  string `json:"total_yuan"`
	StockAfter int    `json:"stock_after"`
	SoldAfter  int    `json:"sold_after"`
}

// DiscountData 折扣响应数据
type DiscountData struct {
	BookID          uint  `json:"book_id"`
	Discount        int   `json:"discount"`
	Price           int64 `json:"price"`
	DiscountedPrice int64 `json:"discounted_price"`
}

// ReportData 报表响应数据
type ReportData struct {
	TotalQuantity    int64  `json:"total_quantity"`
	TotalRevenue     int64  `json:"total_revenue"`
	TotalRevenueYuan string `json:"total_revenue_yuan"`
}

// doJSON 发送请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败(服务是否已启动?)")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}) *Response {
	return doJSON(t, http.MethodPost, url, data)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string) *Response {
	return doJSON(t, http.MethodGet, url, nil)
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}) *Response {
	return doJSON(t, http.MethodPut, url, data)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string) *Response {
	return doJSON(t, http.MethodDelete, url, nil)
}

// GenerateTestTitle 生成唯一的测试书名
// 时间戳后缀避免重复运行时与历史数据混淆
func GenerateTestTitle(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// AddTestBook 入库测试图书并返回图书数据
func AddTestBook(t *testing.T, title string, price int64, stock int) BookData {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":  title,
		"author": "测试作者",
		"price":  price,
		"stock":  stock,
	})
	require.Equal(t, 0, resp.Code, "图书入库失败: %s", resp.Message)

	var data BookData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析图书响应失败")
	require.NotZero(t, data.ID)

	return data
}
