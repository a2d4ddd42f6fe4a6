package sale

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
)

// TestNewRecord 测试销售记录快照语义
func TestNewRecord(t *testing.T) {
	b := book.NewBook("Go语言实战", "威廉·肯尼迪", 10000, 10)
	b.ID = 1
	require.NoError(t, b.ApplyDiscount(20)) // 折后价8000分

	record := NewRecord("SAL1699248000123456", b, 3)

	assert.Equal(t, "SAL1699248000123456", record.SaleNo)
	assert.Equal(t, uint(1), record.BookID)
	assert.Equal(t, "Go语言实战", record.BookTitle, "冻结书名快照")
	assert.Equal(t, 3, record.Quantity)
	assert.Equal(t, int64(8000), record.UnitPrice, "冻结成交时的折后单价")
	assert.Equal(t, int64(24000), record.Total, "总额 = 折后单价 * 数量")
	assert.False(t, record.CreatedAt.IsZero())
}

// TestRecordImmuneToLaterChanges 测试后续改价/改折扣不回溯
func TestRecordImmuneToLaterChanges(t *testing.T) {
	b := book.NewBook("书名", "作者", 10000, 10)
	b.ID = 1

	record := NewRecord(GenerateSaleNo(), b, 2)
	require.Equal(t, int64(20000), record.Total)

	// 成交后改价、打折
	require.NoError(t, b.Replace("新书名", "作者", 50000, 10, 50))

	assert.Equal(t, "书名", record.BookTitle, "账本保留成交时的书名")
	assert.Equal(t, int64(10000), record.UnitPrice, "账本金额不随改价变化")
	assert.Equal(t, int64(20000), record.Total)
}

// TestGenerateSaleNo 测试流水号格式
func TestGenerateSaleNo(t *testing.T) {
	saleNo := GenerateSaleNo()

	assert.True(t, strings.HasPrefix(saleNo, "SAL"), "流水号以SAL开头")
	assert.GreaterOrEqual(t, len(saleNo), 19, "SAL+10位时间戳+6位随机数")

	// 抽样检查唯一性
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		no := GenerateSaleNo()
		assert.False(t, seen[no], "流水号重复: %s", no)
		seen[no] = true
	}
}
