package database

import (
	"Foodnote/config"
	"Foodnote/pkg/log"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接，目录存储模式下返回 nil
func NewDB(conf *config.Config) (*gorm.DB, error) {
	gormConf := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if conf.Debug() {
		gormConf.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch conf.Storage.Driver {
	case config.StorageDriverMySQL:
		dialector = mysql.Open(conf.MySQL.Dsn())
	case config.StorageDriverSQLite:
		if err := os.MkdirAll(filepath.Dir(conf.Storage.SQLitePath), 0o755); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(conf.Storage.SQLitePath)
	default:
		return nil, nil
	}

	db, err := gorm.Open(dialector, gormConf)
	if err != nil {
		log.L.Error("failed to connect database", zap.Error(err))
		return nil, fmt.Errorf("connect %s: %w", conf.Storage.Driver, err)
	}
	log.L.Info("connect database success", zap.String("driver", conf.Storage.Driver))
	return db, nil
}
