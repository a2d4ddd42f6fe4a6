package sale

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateSaleNo 生成销售流水号
// 流水号设计原则:
// 1. 全局唯一(避免冲突)
// 2. 时间有序(便于对账和归档)
// 3. 不可预测(防止恶意遍历)
//
// 格式:SAL + 时间戳(秒) + 6位随机数
// 示例:SAL1699248000123456
func GenerateSaleNo() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000) // 6位随机数
	return fmt.Sprintf("SAL%d%06d", timestamp, random)
}
