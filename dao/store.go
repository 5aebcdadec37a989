package dao

import (
	"Foodnote/types"
	"context"
	"errors"
	"fmt"
	"io"
)

// StoreOp 存储操作类型
type StoreOp string

const (
	OpWrite  StoreOp = "write"
	OpList   StoreOp = "list"
	OpDelete StoreOp = "delete"
)

var (
	ErrWrite  = errors.New("store: write failed")
	ErrList   = errors.New("store: list failed")
	ErrDelete = errors.New("store: delete failed")
)

// StoreError 存储层错误，可以用 errors.Is(err, ErrWrite) 判断类型
type StoreError struct {
	Op  StoreOp
	ID  string
	Err error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("store %s %s: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrWrite:
		return e.Op == OpWrite
	case ErrList:
		return e.Op == OpList
	case ErrDelete:
		return e.Op == OpDelete
	}
	return false
}

func storeErr(op StoreOp, id string, err error) error {
	return &StoreError{Op: op, ID: id, Err: err}
}

// Store 照片与笔记的持久化
type Store interface {
	CreatePhoto(ctx context.Context, data []byte) (types.Photo, error)
	ListPhotos(ctx context.Context) ([]types.Photo, error)
	DeletePhoto(ctx context.Context, id string) error
	OpenPhoto(ctx context.Context, photo types.Photo) (io.ReadCloser, error)

	SaveNote(ctx context.Context, note types.Note) error
	// LoadNote 没有笔记时返回 false 和 nil error
	LoadNote(ctx context.Context, photoID string) (types.Note, bool, error)
	// DeleteNote 笔记不存在不算错误
	DeleteNote(ctx context.Context, photoID string) error
}
