package dao

import (
	"Foodnote/config"
	"Foodnote/pkg/log"
	"Foodnote/pkg/oss"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewBlob 按配置选择本地目录或 OSS
func NewBlob(conf *config.Config) (Blob, error) {
	switch conf.Storage.Blob {
	case config.BlobOss:
		return oss.NewBucket(conf.Oss)
	case config.BlobLocal, "":
		return NewLocalBlob(filepath.Join(conf.Storage.Dir, "blobs")), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", conf.Storage.Blob)
	}
}

// NewStore 按配置选择目录存储或数据库存储
func NewStore(conf *config.Config, db *gorm.DB, blob Blob) (Store, error) {
	switch conf.Storage.Driver {
	case config.StorageDriverFile, "":
		log.L.Info("use file store", zap.String("dir", conf.Storage.Dir))
		return NewFileStore(conf.Storage.Dir)
	case config.StorageDriverSQLite, config.StorageDriverMySQL:
		if db == nil {
			return nil, fmt.Errorf("storage driver %s requires a database", conf.Storage.Driver)
		}
		s := NewDBStore(db, blob)
		if err := s.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.L.Info("use db store", zap.String("driver", conf.Storage.Driver), zap.String("blob", conf.Storage.Blob))
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
