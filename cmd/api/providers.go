package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Aliarcher/Bookstore-Management/internal/application/catalog"
	"github.com/Aliarcher/Bookstore-Management/internal/application/sales"
	"github.com/Aliarcher/Bookstore-Management/internal/domain/book"
	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/config"
	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/persistence"
	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/persistence/redis"
	"github.com/Aliarcher/Bookstore-Management/internal/interface/http/handler"
	"github.com/Aliarcher/Bookstore-Management/internal/interface/http/middleware"
	"github.com/Aliarcher/Bookstore-Management/pkg/metrics"
	"github.com/Aliarcher/Bookstore-Management/pkg/mq"
	"github.com/Aliarcher/Bookstore-Management/pkg/response"
)

// App 应用组件包(Injector的最终产物)
type App struct {
	Config *config.Config
	Engine *gin.Engine
}

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含:配置加载、存储层(mysql/memory按配置切换)、报表缓存、事件发布
var infrastructureSet = wire.NewSet(
	config.Load,            // 加载配置文件
	persistence.NewStorage, // 创建存储层组件包
	wire.FieldsOf(new(*persistence.Storage), "Books", "Sales", "Tx"),
	provideReportCache,    // 报表缓存(Redis)
	provideEventPublisher, // 成交事件发布(RabbitMQ)
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService, // 图书目录领域服务
)

// applicationSet 应用层依赖
// 包含:所有Use Case的构造函数
var applicationSet = wire.NewSet(
	catalog.NewAddBookUseCase,     // 图书入库用例
	catalog.NewGetBookUseCase,     // 图书详情用例
	catalog.NewListBooksUseCase,   // 图书列表用例
	catalog.NewSearchBooksUseCase, // 图书搜索用例
	catalog.NewUpdateBookUseCase,  // 图书更新用例
	catalog.NewRemoveBookUseCase,  // 图书删除用例
	catalog.NewRestockBookUseCase, // 图书补货用例
	sales.NewRecordSaleUseCase,    // 记录销售用例
	sales.NewApplyDiscountUseCase, // 应用折扣用例
	sales.NewSalesReportUseCase,   // 销售报表用例
	sales.NewListSalesUseCase,     // 销售历史用例
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler, // 图书处理器
	handler.NewSaleHandler, // 销售处理器
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================

// provideReportCache 从配置创建报表缓存
// memory存储模式对应原始系统"无外部依赖"的形态,此时不连接Redis,
// 报表用例拿到nil缓存后每次直接落库聚合
func provideReportCache(cfg *config.Config) (*redis.ReportCache, error) {
	if cfg.Storage.Driver == "memory" {
		return nil, nil
	}

	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return redis.NewReportCache(client, cfg.Redis.ReportTTL), nil
}

// provideEventPublisher 从配置创建成交事件发布者
// mq.enabled=false时返回nil,记录销售用例会跳过事件发布
func provideEventPublisher(cfg *config.Config) (sales.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册集中在这里,Wire会自动注入所有Handler
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	saleHandler *handler.SaleHandler,
) *gin.Engine {
	// 初始化Prometheus指标(注册到全局Registry,只执行一次)
	metrics.InitMetrics()

	// 设置运行模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Logger())  // 请求日志(带请求ID)
	r.Use(middleware.Metrics()) // HTTP指标采集
	r.Use(gin.Recovery())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档路由
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 图书目录模块
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.AddBook)                     // 入库
			books.GET("", bookHandler.ListBooks)                    // 列表
			books.GET("/search", bookHandler.SearchBooks)           // 搜索
			books.GET("/:id", bookHandler.GetBook)                  // 详情
			books.PUT("/:id", bookHandler.UpdateBook)               // 更新
			books.DELETE("/:id", bookHandler.RemoveBook)            // 删除
			books.POST("/:id/restock", bookHandler.RestockBook)     // 补货
			books.POST("/:id/discount", saleHandler.ApplyDiscount)  // 应用折扣
		}

		// 销售账本模块
		salesGroup := v1.Group("/sales")
		{
			salesGroup.POST("", saleHandler.RecordSale)        // 记录销售
			salesGroup.GET("", saleHandler.ListSales)          // 销售历史
			salesGroup.GET("/report", saleHandler.SalesReport) // 销售报表
		}
	}

	return r
}

// newApp 组装应用
func newApp(cfg *config.Config, engine *gin.Engine) *App {
	return &App{
		Config: cfg,
		Engine: engine,
	}
}
