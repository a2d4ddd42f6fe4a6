package book

import (
	"context"
	"strings"
)

// Service 图书目录领域服务接口(Catalog)
// 设计说明:
// 1. 领域服务负责入参的业务规则校验,实体负责不变量维护
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 销售相关的跨聚合操作(记录销售/应用折扣)在应用层编排
type Service interface {
	// AddBook 添加图书(入库)
	// 业务规则:
	// - 书名/作者去除首尾空白后不能为空
	// - 价格必须>=0(分),库存必须>=0
	// - 新书sold=0,discount=0
	AddBook(ctx context.Context, title, author string, price int64, stock int) (*Book, error)

	// GetBook 根据ID获取图书详情
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 整体更新图书
	// 业务规则:五个可变字段整体替换,sold保持不变
	UpdateBook(ctx context.Context, id uint, title, author string, price int64, stock, discount int) (*Book, error)

	// RemoveBook 删除图书
	// 业务规则:销售记录作为历史事实保留,不随图书删除
	RemoveBook(ctx context.Context, id uint) error

	// ListBooks 按插入顺序分页查询
	// 边界规则:
	// - limit<=0返回空列表(总数仍然返回)
	// - offset超出末尾返回空列表
	ListBooks(ctx context.Context, offset, limit int) ([]*Book, int64, error)

	// SearchBooks 按书名/作者搜索(不区分大小写的子串匹配)
	// 空关键词匹配所有图书,结果按ID升序
	SearchBooks(ctx context.Context, field SearchField, keyword string) ([]*Book, error)

	// RestockBook 补货
	// 业务规则:补货数量必须>0,这是库存增加的唯一途径
	RestockBook(ctx context.Context, id uint, quantity int) (*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 添加图书
func (s *service) AddBook(ctx context.Context, title, author string, price int64, stock int) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	// 1. 业务规则校验
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if author == "" {
		return nil, ErrEmptyAuthor
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	// 2. 创建图书实体
	b := NewBook(title, author, price, stock)

	// 3. 持久化(回填自增ID)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 整体更新图书
// 写回走Update,五个可编辑字段全部取调用方给定值;
// sold不在Update的列里,并发成交的累计销量不会被这里覆盖
func (s *service) UpdateBook(ctx context.Context, id uint, title, author string, price int64, stock, discount int) (*Book, error) {
	// 1. 查询图书(不存在返回ErrBookNotFound)
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 实体校验并替换可变字段(sold不变)
	if err := b.Replace(strings.TrimSpace(title), strings.TrimSpace(author), price, stock, discount); err != nil {
		return nil, err
	}

	// 3. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// RemoveBook 删除图书
func (s *service) RemoveBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListBooks 按插入顺序分页查询
func (s *service) ListBooks(ctx context.Context, offset, limit int) ([]*Book, int64, error) {
	if offset < 0 {
		offset = 0
	}
	// limit<=0直接返回空列表,总数仍然查询(前端翻页需要)
	if limit <= 0 {
		_, total, err := s.repo.List(ctx, ListParams{Offset: 0, Limit: 0})
		if err != nil {
			return nil, 0, err
		}
		return []*Book{}, total, nil
	}

	return s.repo.List(ctx, ListParams{Offset: offset, Limit: limit})
}

// SearchBooks 按书名/作者搜索
// 搜索不分页,返回全部匹配:先查总数,再按总数取齐
func (s *service) SearchBooks(ctx context.Context, field SearchField, keyword string) ([]*Book, error) {
	params := ListParams{Keyword: keyword, Field: field}

	_, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []*Book{}, nil
	}

	params.Limit = int(total)
	books, _, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// RestockBook 补货
func (s *service) RestockBook(ctx context.Context, id uint, quantity int) (*Book, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if err := s.repo.AddStock(ctx, id, quantity); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}
