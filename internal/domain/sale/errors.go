package sale

import (
	apperrors "github.com/Aliarcher/Bookstore-Management/pkg/errors"
)

// 销售领域错误定义
var (
	// ErrSaleNotFound 销售记录不存在
	ErrSaleNotFound = apperrors.New(apperrors.ErrCodeSaleNotFound, "销售记录不存在")

	// ErrInvalidQuantity 销售数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "销售数量必须大于0")
)
