package book

import (
	apperrors "github.com/Aliarcher/Bookstore-Management/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrEmptyTitle 书名不能为空
	ErrEmptyTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrEmptyAuthor 作者不能为空
	ErrEmptyAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidDiscount 折扣比例超出范围
	ErrInvalidDiscount = apperrors.New(apperrors.ErrCodeInvalidDiscount, "折扣比例必须在0到100之间")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须大于0")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")
)
