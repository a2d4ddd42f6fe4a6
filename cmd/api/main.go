package main

import (
	"fmt"
	"log"
)

// main 主程序入口
// 依赖注入由Wire在编译期生成(见wire.go/wire_gen.go)
func main() {
	// 1. 初始化应用(配置→存储→领域→用例→路由)
	app, err := InitializeApp()
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}

	cfg := app.Config
	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 存储引擎: %s\n", cfg.Storage.Driver)
	if cfg.Storage.Driver == "mysql" {
		fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
		fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	}
	if cfg.MQ.Enabled {
		fmt.Printf("  - 消息队列: %s (exchange=%s)\n", cfg.MQ.URL, cfg.MQ.Exchange)
	}

	// 2. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("   图书入库: POST http://localhost%s/api/v1/books\n", addr)
	fmt.Printf("   记录销售: POST http://localhost%s/api/v1/sales\n", addr)
	fmt.Printf("   销售报表: GET  http://localhost%s/api/v1/sales/report\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := app.Engine.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}
