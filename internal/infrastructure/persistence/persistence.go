// Package persistence 组装存储层:根据配置选择mysql或memory驱动
//
// 设计说明:
// 1. 领域核心只依赖domain层的仓储接口和这里的TxManager接口,
//    对外完全持久化无关(内存/数据库随配置切换)
// 2. 对应原始系统的两种形态:"带数据库"与"不带数据库"的同一套业务逻辑
package persistence

import (
	"context"
	"fmt"
	"log"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
	"github.com/Aliarcher/Bookstore-Management/internal/domain/sale"
	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/config"
	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/persistence/memory"
	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/persistence/mysql"
)

// TxManager 事务边界接口
// record_sale等跨聚合写操作通过它保证原子性:
// fn返回error时所有修改整体回滚,对外不暴露部分生效的状态
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Storage 存储层组件包
// Wire通过FieldsOf把字段拆成独立依赖注入到上层
type Storage struct {
	Books book.Repository
	Sales sale.Repository
	Tx    TxManager
}

// NewStorage 根据配置创建存储层
func NewStorage(cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Driver {
	case "mysql":
		db, err := mysql.NewDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("初始化MySQL存储失败: %w", err)
		}
		return &Storage{
			Books: mysql.NewBookRepository(db),
			Sales: mysql.NewSaleRepository(db),
			Tx:    mysql.NewTxManager(db),
		}, nil

	case "memory":
		log.Println("✓ 使用内存存储(重启后数据清空)")
		store := memory.NewStore()
		return &Storage{
			Books: memory.NewBookRepository(store),
			Sales: memory.NewSaleRepository(store),
			Tx:    memory.NewTxManager(store),
		}, nil

	default:
		return nil, fmt.Errorf("无效的存储引擎: %q", cfg.Storage.Driver)
	}
}
