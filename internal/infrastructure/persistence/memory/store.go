// Package memory 纯内存存储实现(对应"无数据库"运行模式)
//
// 设计说明:
// 1. 所有状态集中在Store里,由一把互斥锁保护:
//    每个操作都是一个完整的临界区,串行执行,天然满足"单一互斥边界"
// 2. 事务语义通过快照/恢复实现:TxManager在进入事务时对全部状态做深拷贝,
//    事务函数返回error时整体恢复,保证"要么全生效,要么全不生效"
// 3. 锁的传递与mysql实现的事务DB传递同构:TxManager持锁后在context里
//    打上标记,仓储方法看到标记就不再重复加锁(避免死锁)
package memory

import (
	"context"
	"sync"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
	"github.com/Aliarcher/Bookstore-Management/internal/domain/sale"
)

// txKey context中"已持锁"标记的键
type txKey struct{}

// Store 内存存储的共享状态
type Store struct {
	mu sync.Mutex

	nextBookID uint
	bookOrder  []uint              // 插入顺序(软删除后从序列中移除)
	books      map[uint]*book.Book // 图书主数据(存副本,防止外部别名修改)

	nextSaleID uint
	sales      []*sale.Record // 只追加的销售账本
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{
		nextBookID: 1,
		nextSaleID: 1,
		books:      make(map[uint]*book.Book),
	}
}

// lock 获取store锁
// 事务内(context带txKey标记)不重复加锁,返回空解锁函数
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// snapshot 对全部状态做深拷贝(用于事务回滚)
// 调用方必须已持锁
func (s *Store) snapshot() *storeSnapshot {
	books := make(map[uint]*book.Book, len(s.books))
	for id, b := range s.books {
		copied := *b
		books[id] = &copied
	}

	return &storeSnapshot{
		nextBookID: s.nextBookID,
		bookOrder:  append([]uint(nil), s.bookOrder...),
		books:      books,
		nextSaleID: s.nextSaleID,
		// 销售记录不可变,浅拷贝切片头即可
		sales: append([]*sale.Record(nil), s.sales...),
	}
}

// restore 恢复快照(事务失败时整体回滚)
// 调用方必须已持锁
func (s *Store) restore(snap *storeSnapshot) {
	s.nextBookID = snap.nextBookID
	s.bookOrder = snap.bookOrder
	s.books = snap.books
	s.nextSaleID = snap.nextSaleID
	s.sales = snap.sales
}

// storeSnapshot 状态快照
type storeSnapshot struct {
	nextBookID uint
	bookOrder  []uint
	books      map[uint]*book.Book
	nextSaleID uint
	sales      []*sale.Record
}
