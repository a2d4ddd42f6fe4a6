package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
	"github.com/Aliarcher/Bookstore-Management/internal/domain/sale"
	apperrors "github.com/Aliarcher/Bookstore-Management/pkg/errors"
)

// saleColumns 查询销售记录时的全部列
func saleColumns() []string {
	return []string{"id", "sale_no", "book_id", "book_title", "quantity", "unit_price", "total", "created_at"}
}

func TestSaleRepository_Create(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewSaleRepository(gormDB)

	b := book.NewBook("Go语言实战", "William Kennedy", 10000, 10)
	b.ID = 1
	require.NoError(t, b.ApplyDiscount(20))

	t.Run("写入成功回填ID", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `sales`").
			WillReturnResult(sqlmock.NewResult(7, 1))
		mock.ExpectCommit()

		record := sale.NewRecord("SAL20240101120000123456", b, 3)
		err := repo.Create(context.Background(), record)

		require.NoError(t, err)
		assert.Equal(t, uint(7), record.ID)
		assert.Equal(t, int64(8000), record.UnitPrice, "快照折后价")
		assert.Equal(t, int64(24000), record.Total)
	})

	t.Run("流水号冲突转业务错误", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `sales`").
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'SAL...' for key 'sale_no'"))
		mock.ExpectRollback()

		record := sale.NewRecord("SAL20240101120000123456", b, 1)
		err := repo.Create(context.Background(), record)

		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrCodeBusinessError, appErr.Code)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepository_Totals(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewSaleRepository(gormDB)

	t.Run("聚合结果", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity\\), 0\\)").
			WillReturnRows(sqlmock.NewRows([]string{"total_quantity", "total_revenue"}).
				AddRow(3, 24000))

		totals, err := repo.Totals(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(3), totals.TotalQuantity)
		assert.Equal(t, int64(24000), totals.TotalRevenue)
	})

	t.Run("空账本归零", func(t *testing.T) {
		// COALESCE保证无记录时SUM返回0而不是NULL
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity\\), 0\\)").
			WillReturnRows(sqlmock.NewRows([]string{"total_quantity", "total_revenue"}).
				AddRow(0, 0))

		totals, err := repo.Totals(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(0), totals.TotalQuantity)
		assert.Equal(t, int64(0), totals.TotalRevenue)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepository_List(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewSaleRepository(gormDB)

	now := time.Now()

	t.Run("按成交顺序分页", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sales`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
		mock.ExpectQuery("SELECT \\* FROM `sales`").
			WillReturnRows(sqlmock.NewRows(saleColumns()).
				AddRow(1, "SAL001", 1, "书A", 1, 100, 100, now).
				AddRow(2, "SAL002", 2, "书B", 2, 200, 400, now))

		records, total, err := repo.List(context.Background(), 0, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, records, 2)
		assert.Equal(t, "SAL001", records[0].SaleNo)
		assert.Equal(t, "书A", records[0].BookTitle)
	})

	t.Run("按图书过滤", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sales`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT \\* FROM `sales`").
			WillReturnRows(sqlmock.NewRows(saleColumns()).
				AddRow(2, "SAL002", 2, "书B", 2, 200, 400, now))

		records, total, err := repo.ListByBookID(context.Background(), 2, 0, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, uint(2), records[0].BookID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.False(t, isDuplicateError(errors.New("connection refused")))
	assert.True(t, isDuplicateError(errors.New("Error 1062 (23000): Duplicate entry 'SAL' for key 'sale_no'")))
}
