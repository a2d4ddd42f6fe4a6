//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// Wire是编译期依赖注入工具:与运行时反射注入不同,Wire在编译期生成代码,
// 零运行时开销、类型安全、编译期检测循环依赖。
//
// 工作流程:
// Step 1: 编写wire.go(本文件),定义Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go,包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/google/wire"
)

// InitializeApp 初始化整个应用
//
// 依赖链示例:
// *App 需要 → *gin.Engine
// *gin.Engine 需要 → *handler.BookHandler
// *handler.BookHandler 需要 → *catalog.AddBookUseCase
// *catalog.AddBookUseCase 需要 → book.Service
// book.Service 需要 → book.Repository
// book.Repository 来自 → *persistence.Storage(按配置选mysql或memory)
// *persistence.Storage 需要 → *config.Config
//
// Wire会按正确的顺序调用所有构造函数
func InitializeApp() (*App, error) {
	wire.Build(
		// 基础设施层
		infrastructureSet,

		// 领域层
		domainSet,

		// 应用层
		applicationSet,

		// 接口层
		handlerSet,

		// Gin引擎与应用组装
		provideGinEngine,
		newApp,
	)

	// 返回值是占位符,实际运行时由wire_gen.go中生成的代码替代
	return nil, nil
}
