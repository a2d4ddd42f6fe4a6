package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(mysql/memory两种实现)
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. 写操作支持事务传递(通过context)
type Repository interface {
	// Create 创建图书(回填自增ID)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息(全字段保存)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	// 注意:只删除图书本身,销售记录作为历史事实保留
	Delete(ctx context.Context, id uint) error

	// List 按插入顺序(ID升序)分页查询图书列表
	// params.Keyword非空时对标题/作者做不区分大小写的子串匹配
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(用于销售时锁定库存)
	// 使用SELECT FOR UPDATE锁定行,防止并发超卖
	LockByID(ctx context.Context, id uint) (*Book, error)

	// ApplySale 原子化应用一笔销售:stock -= quantity, sold += quantity
	// 内部会检查库存是否充足,不足则返回ErrInsufficientStock
	ApplySale(ctx context.Context, id uint, quantity int) error

	// AddStock 补货(原子操作,quantity>0)
	AddStock(ctx context.Context, id uint, quantity int) error
}

// SearchField 搜索字段
type SearchField string

const (
	SearchByTitle  SearchField = "title"  // 按书名搜索
	SearchByAuthor SearchField = "author" // 按作者搜索
)

// ListParams 列表查询参数
// 设计说明:
// 1. Offset/Limit直接对应"第几条开始取几条",排序固定为ID升序(插入顺序)
// 2. Keyword为空时匹配所有图书
// 3. Field指定搜索字段,为空时同时搜索标题和作者
type ListParams struct {
	Offset  int         // 起始偏移(从0开始)
	Limit   int         // 最多返回条数
	Keyword string      // 搜索关键词(子串匹配,不区分大小写)
	Field   SearchField // 搜索字段(空值表示标题+作者)
}
