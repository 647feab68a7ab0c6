// Package dbtest 给各层测试提供一个迁移好的内存SQLite，每个测试一个独立的库
package dbtest

import (
	"WeTube/internal/database"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var seq atomic.Int64

func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(0)", name, seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), database.Options())
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("测试数据库迁移失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取sql.DB失败: %v", err)
	}
	// 内存库在最后一个连接关闭时就没了，固定一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
