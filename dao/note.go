package dao

import (
	"Foodnote/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type NoteDAO struct {
	Repo[models.Note]
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{
		Repo: NewRepo[models.Note](db),
	}
}

// FindByPhotoID 没有笔记时返回 nil, nil
func (d *NoteDAO) FindByPhotoID(ctx context.Context, photoID string) (*models.Note, error) {
	note, err := d.Repo.FindByWhere(ctx, "photo_id = ?", photoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return note, err
}

// Upsert 一张照片只保留一条笔记
func (d *NoteDAO) Upsert(ctx context.Context, note *models.Note) error {
	return d.Repo.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ? AND id <> ?", note.PhotoID, note.ID).
			Delete(&models.Note{}).Error; err != nil {
			return err
		}
		return tx.Save(note).Error
	})
}

func (d *NoteDAO) DeleteByPhotoID(ctx context.Context, photoID string) error {
	_, err := d.Repo.Delete(ctx, "photo_id = ?", photoID)
	return err
}
