package memory

import (
	"context"
)

// TxManager 内存存储的事务管理器
// 与mysql.TxManager语义对齐:
// - fn内的所有仓储操作在同一临界区内串行执行(持store锁)
// - fn返回error时恢复快照,对外不暴露任何部分修改
type TxManager struct {
	store *Store
}

// NewTxManager 创建事务管理器
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Transaction 执行事务
// fn内panic时同样恢复快照再继续抛出,与gorm.Transaction的回滚行为对齐
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	defer func() {
		if r := recover(); r != nil {
			m.store.restore(snap)
			panic(r)
		}
	}()

	// 打上"已持锁"标记,事务内的仓储调用不再加锁
	txCtx := context.WithValue(ctx, txKey{}, struct{}{})

	if err := fn(txCtx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}
