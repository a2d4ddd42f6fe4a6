package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Aliarcher/Bookstore-Management/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意:AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&SaleModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/book/entity.go是领域实体,不依赖GORM
// 3. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 4. 标题/作者有搜索索引,列表查询按主键升序(插入顺序)
type BookModel struct {
	ID        uint           `gorm:"primaryKey"`
	Title     string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author    string         `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Price     int64          `gorm:"not null;comment:原价(分)"`
	Stock     int            `gorm:"not null;default:0;comment:库存数量"`
	Sold      int            `gorm:"not null;default:0;comment:累计销量"`
	Discount  int            `gorm:"not null;default:0;comment:折扣百分比(0-100)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// SaleModel GORM销售记录模型
// 设计说明:
// 1. 账本只追加:没有UpdatedAt/DeletedAt,记录一经写入不再变化
// 2. BookID只是引用,没有外键约束:图书删除后账本保留
// 3. BookTitle/UnitPrice是成交时刻的快照字段
type SaleModel struct {
	ID        uint      `gorm:"primaryKey"`
	SaleNo    string    `gorm:"uniqueIndex;size:32;not null;comment:销售流水号"`
	BookID    uint      `gorm:"index;not null;comment:图书ID(引用,不级联)"`
	BookTitle string    `gorm:"size:200;not null;comment:成交时书名快照"`
	Quantity  int       `gorm:"not null;comment:销售数量"`
	UnitPrice int64     `gorm:"not null;comment:成交折后单价(分)"`
	Total     int64     `gorm:"not null;comment:成交总额(分)"`
	CreatedAt time.Time `gorm:"index;comment:成交时间"`
}

// TableName 指定表名
func (SaleModel) TableName() string {
	return "sales"
}
