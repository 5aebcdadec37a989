package dao

import (
	"Foodnote/types"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDBStore(t *testing.T) *DBStore {
	t.Helper()
	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	s := NewDBStore(db, NewLocalBlob(filepath.Join(dir, "blobs")))
	require.NoError(t, s.AutoMigrate())
	return s
}

func TestDBStore_PhotoLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestDBStore(t)

	first, err := s.CreatePhoto(ctx, []byte("one"))
	require.NoError(t, err)
	s.now = func() time.Time { return time.Now().Add(time.Minute) }
	second, err := s.CreatePhoto(ctx, []byte("two"))
	require.NoError(t, err)

	list, err := s.ListPhotos(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	rc, err := s.OpenPhoto(ctx, types.Photo{ID: first.ID})
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "one", string(data))

	require.NoError(t, s.DeletePhoto(ctx, first.ID))
	list, err = s.ListPhotos(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	err = s.DeletePhoto(ctx, first.ID)
	assert.ErrorIs(t, err, ErrDelete)
}

func TestDBStore_DeletePhotoWithMissingBlob(t *testing.T) {
	ctx := context.Background()
	s := newTestDBStore(t)

	p, err := s.CreatePhoto(ctx, []byte("bytes"))
	require.NoError(t, err)
	require.NoError(t, s.Blob.Delete(ctx, p.Ref))

	require.NoError(t, s.DeletePhoto(ctx, p.ID))
	list, err := s.ListPhotos(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDBStore_SaveNoteWithoutID(t *testing.T) {
	ctx := context.Background()
	s := newTestDBStore(t)

	require.NoError(t, s.SaveNote(ctx, types.Note{PhotoID: "p1", Name: "Taco", Rating: 4}))
	got, ok, err := s.LoadNote(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, got.ID)
}

func TestDBStore_NoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestDBStore(t)

	lat, lng := 35.68, 139.69
	note := types.Note{
		ID:          "n1",
		PhotoID:     "p1",
		Name:        "Taco",
		Restaurant:  "Casa",
		Location:    "Shibuya, Tokyo, Japan",
		Latitude:    &lat,
		Longitude:   &lng,
		Rating:      4,
		Description: "good",
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, s.SaveNote(ctx, note))

	got, ok, err := s.LoadNote(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "n1", got.ID)
	assert.Equal(t, "Taco", got.Name)
	assert.Equal(t, 4, got.Rating)
	require.NotNil(t, got.Latitude)
	assert.InDelta(t, lat, *got.Latitude, 1e-9)
	assert.True(t, note.CreatedAt.Equal(got.CreatedAt))

	// 同一照片换了笔记 ID 也只保留一条
	note.ID = "n2"
	note.Name = "Burrito"
	require.NoError(t, s.SaveNote(ctx, note))
	got, ok, err = s.LoadNote(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "n2", got.ID)
	var count int64
	require.NoError(t, s.Notes.Model(ctx).Where("photo_id = ?", "p1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, s.DeleteNote(ctx, "p1"))
	_, ok, err = s.LoadNote(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}
