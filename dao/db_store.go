package dao

import (
	"Foodnote/models"
	"Foodnote/pkg/log"
	"Foodnote/pkg/snowflake"
	"Foodnote/types"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"io"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ Store = (*DBStore)(nil)

// DBStore 元数据在数据库，照片字节在 Blob
type DBStore struct {
	Photos *PhotoDAO
	Notes  *NoteDAO
	Blob   Blob
	now    func() time.Time
}

func NewDBStore(db *gorm.DB, blob Blob) *DBStore {
	return &DBStore{
		Photos: NewPhotoDAO(db),
		Notes:  NewNoteDAO(db),
		Blob:   blob,
		now:    time.Now,
	}
}

// AutoMigrate 建表
func (s *DBStore) AutoMigrate() error {
	return s.Photos.Db.AutoMigrate(&models.Photo{}, &models.Note{})
}

func (s *DBStore) CreatePhoto(ctx context.Context, data []byte) (types.Photo, error) {
	id := uuid.NewString()
	now := s.now()
	objectKey := fmt.Sprintf("photo/%s/%s.jpg", now.Format("2006/01/02"), id)

	if err := s.Blob.Put(ctx, objectKey, data); err != nil {
		return types.Photo{}, storeErr(OpWrite, id, err)
	}

	row := models.Photo{
		ID:        id,
		ObjectKey: objectKey,
		Size:      int64(len(data)),
		CreatedAt: now,
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		row.Width, row.Height = cfg.Width, cfg.Height
	}
	if err := s.Photos.Create(ctx, &row); err != nil {
		if derr := s.Blob.Delete(ctx, objectKey); derr != nil {
			log.L.Warn("cleanup blob failed", zap.String("key", objectKey), zap.Error(derr))
		}
		return types.Photo{}, storeErr(OpWrite, id, err)
	}
	return toPhoto(row), nil
}

func (s *DBStore) ListPhotos(ctx context.Context) ([]types.Photo, error) {
	rows, err := s.Photos.ListAll(ctx)
	if err != nil {
		return nil, storeErr(OpList, "", err)
	}
	photos := make([]types.Photo, 0, len(rows))
	for _, r := range rows {
		photos = append(photos, toPhoto(r))
	}
	return photos, nil
}

func (s *DBStore) DeletePhoto(ctx context.Context, id string) error {
	row, err := s.Photos.FindByID(ctx, id)
	if err != nil {
		return storeErr(OpDelete, id, err)
	}
	// 字节已经不在了也要删掉记录
	if err := s.Blob.Delete(ctx, row.ObjectKey); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return storeErr(OpDelete, id, err)
	}
	if _, err := s.Photos.DeleteByID(ctx, id); err != nil {
		return storeErr(OpDelete, id, err)
	}
	return nil
}

func (s *DBStore) OpenPhoto(ctx context.Context, photo types.Photo) (io.ReadCloser, error) {
	key := photo.Ref
	if key == "" {
		row, err := s.Photos.FindByID(ctx, photo.ID)
		if err != nil {
			return nil, err
		}
		key = row.ObjectKey
	}
	return s.Blob.Get(ctx, key)
}

func (s *DBStore) SaveNote(ctx context.Context, note types.Note) error {
	if note.ID == "" {
		note.ID = snowflake.GenNoteID()
	}
	row := models.Note{
		ID:          note.ID,
		PhotoID:     note.PhotoID,
		Name:        note.Name,
		Restaurant:  note.Restaurant,
		Location:    note.Location,
		Latitude:    note.Latitude,
		Longitude:   note.Longitude,
		Rating:      int8(note.Rating),
		Description: note.Description,
		CreatedAt:   note.CreatedAt,
	}
	if err := s.Notes.Upsert(ctx, &row); err != nil {
		return storeErr(OpWrite, note.ID, err)
	}
	return nil
}

func (s *DBStore) LoadNote(ctx context.Context, photoID string) (types.Note, bool, error) {
	row, err := s.Notes.FindByPhotoID(ctx, photoID)
	if err != nil {
		return types.Note{}, false, storeErr(OpList, photoID, err)
	}
	if row == nil {
		return types.Note{}, false, nil
	}
	return types.Note{
		ID:          row.ID,
		PhotoID:     row.PhotoID,
		Name:        row.Name,
		Restaurant:  row.Restaurant,
		Location:    row.Location,
		Latitude:    row.Latitude,
		Longitude:   row.Longitude,
		Rating:      int(row.Rating),
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}, true, nil
}

func (s *DBStore) DeleteNote(ctx context.Context, photoID string) error {
	if err := s.Notes.DeleteByPhotoID(ctx, photoID); err != nil {
		return storeErr(OpDelete, photoID, err)
	}
	return nil
}

func toPhoto(r models.Photo) types.Photo {
	return types.Photo{ID: r.ID, Ref: r.ObjectKey, CreatedAt: r.CreatedAt}
}
