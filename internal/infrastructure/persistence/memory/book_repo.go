package memory

import (
	"context"
	"strings"
	"time"

	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
)

// bookRepository 图书仓储实现(内存)
// 实体在进出仓储时都复制一份,保证领域层拿到的对象不会被并发修改
type bookRepository struct {
	store *Store
}

// NewBookRepository 创建图书仓储
func NewBookRepository(store *Store) book.Repository {
	return &bookRepository{store: store}
}

// Create 创建图书(分配自增ID,记录插入顺序)
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	now := time.Now()
	b.ID = r.store.nextBookID
	b.CreatedAt = now
	b.UpdatedAt = now
	r.store.nextBookID++

	copied := *b
	r.store.books[b.ID] = &copied
	r.store.bookOrder = append(r.store.bookOrder, b.ID)
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	return r.find(id)
}

// Update 更新图书的可编辑字段
// sold保留仓储内的当前值:销量只由ApplySale累加,
// 入参实体可能是并发成交前读出的旧副本,不能拿它回写sold
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	existing, ok := r.store.books[b.ID]
	if !ok {
		return book.ErrBookNotFound
	}
	copied := *b
	copied.Sold = existing.Sold
	copied.UpdatedAt = time.Now()
	r.store.books[b.ID] = &copied
	return nil
}

// Delete 删除图书(销售账本保留)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.store.books, id)
	for i, bid := range r.store.bookOrder {
		if bid == id {
			r.store.bookOrder = append(r.store.bookOrder[:i], r.store.bookOrder[i+1:]...)
			break
		}
	}
	return nil
}

// List 按插入顺序分页查询
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	// 1. 先按插入顺序过滤出匹配的图书
	matched := make([]*book.Book, 0, len(r.store.bookOrder))
	for _, id := range r.store.bookOrder {
		b := r.store.books[id]
		if matchKeyword(b, params.Field, params.Keyword) {
			matched = append(matched, b)
		}
	}
	total := int64(len(matched))

	// 2. 再做分页切片
	if params.Limit <= 0 || params.Offset >= len(matched) {
		return []*book.Book{}, total, nil
	}
	end := params.Offset + params.Limit
	if end > len(matched) {
		end = len(matched)
	}

	result := make([]*book.Book, 0, end-params.Offset)
	for _, b := range matched[params.Offset:end] {
		copied := *b
		result = append(result, &copied)
	}
	return result, total, nil
}

// LockByID 悲观锁查询
// 内存实现中锁由TxManager统一持有,这里等同于FindByID
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	return r.find(id)
}

// ApplySale 原子化应用一笔销售:stock -= quantity, sold += quantity
func (r *bookRepository) ApplySale(ctx context.Context, id uint, quantity int) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if quantity <= 0 {
		return book.ErrInvalidQuantity
	}
	b, ok := r.store.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock < quantity {
		return book.ErrInsufficientStock
	}
	b.Stock -= quantity
	b.Sold += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// AddStock 补货
func (r *bookRepository) AddStock(ctx context.Context, id uint, quantity int) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if quantity <= 0 {
		return book.ErrInvalidQuantity
	}
	b, ok := r.store.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// find 返回实体副本(调用方必须已持锁)
func (r *bookRepository) find(id uint) (*book.Book, error) {
	b, ok := r.store.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

// matchKeyword 不区分大小写的子串匹配(空关键词匹配所有)
func matchKeyword(b *book.Book, field book.SearchField, keyword string) bool {
	if keyword == "" {
		return true
	}
	kw := strings.ToLower(keyword)
	switch field {
	case book.SearchByTitle:
		return strings.Contains(strings.ToLower(b.Title), kw)
	case book.SearchByAuthor:
		return strings.Contains(strings.ToLower(b.Author), kw)
	default:
		return strings.Contains(strings.ToLower(b.Title), kw) ||
			strings.Contains(strings.ToLower(b.Author), kw)
	}
}
