package dao

import (
	"Foodnote/models"
	"context"

	"gorm.io/gorm"
)

type PhotoDAO struct {
	Repo[models.Photo]
}

func NewPhotoDAO(db *gorm.DB) *PhotoDAO {
	return &PhotoDAO{
		Repo: NewRepo[models.Photo](db),
	}
}

func (d *PhotoDAO) Create(ctx context.Context, photo *models.Photo) error {
	return d.Repo.Db.WithContext(ctx).Create(photo).Error
}

// ListAll 按创建时间倒序
func (d *PhotoDAO) ListAll(ctx context.Context) ([]models.Photo, error) {
	var photos []models.Photo
	err := d.Repo.Db.WithContext(ctx).
		Order("created_at DESC").
		Find(&photos).Error
	return photos, err
}

func (d *PhotoDAO) DeleteByID(ctx context.Context, id string) (int64, error) {
	return d.Repo.Delete(ctx, "id = ?", id)
}
