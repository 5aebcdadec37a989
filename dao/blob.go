package dao

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Blob 照片字节的存放位置，数据库只记录 key
type Blob interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

var _ Blob = (*LocalBlob)(nil)

// LocalBlob 本地目录
type LocalBlob struct {
	root string
}

func NewLocalBlob(root string) *LocalBlob {
	return &LocalBlob{root: root}
}

func (b *LocalBlob) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fs.ErrInvalid
	}
	return filepath.Join(b.root, clean), nil
}

func (b *LocalBlob) Put(ctx context.Context, key string, data []byte) error {
	p, err := b.path(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return writeFileAtomic(dir, p, data)
}

func (b *LocalBlob) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := b.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// Delete 对象不存在时返回 fs.ErrNotExist
func (b *LocalBlob) Delete(ctx context.Context, key string) error {
	p, err := b.path(key)
	if err != nil {
		return err
	}
	return os.Remove(p)
}
