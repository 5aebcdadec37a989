package service

import (
	"Foodnote/config"
	"Foodnote/pkg/llm"
	"Foodnote/types"
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFood struct {
	name  string
	err   error
	calls atomic.Int32
}

func (f *fakeFood) Identify(context.Context, []byte) (string, error) {
	f.calls.Add(1)
	return f.name, f.err
}

type fakeGeo struct {
	display string
	ok      bool
}

func (g *fakeGeo) ReverseGeocode(context.Context, types.Coordinate) (string, bool) {
	return g.display, g.ok
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newTestPhotoService(t *testing.T, food FoodIdentifier, geo Geocoder) (*PhotoService, *Catalog) {
	t.Helper()
	c := newTestCatalog(t, newMemStore())
	s, err := NewPhotoService(c, food, geo, &config.Config{
		Thumbnail: &config.ThumbnailConfig{CacheSize: 8, DefaultSize: 64},
	})
	require.NoError(t, err)
	return s, c
}

func TestImport_Canceled(t *testing.T) {
	s, c := newTestPhotoService(t, &fakeFood{}, &fakeGeo{})
	res, err := s.Import(context.Background(), types.PickerCanceledResult())
	assert.NoError(t, err)
	assert.Nil(t, res)

	photos, _ := c.Snapshot()
	assert.Empty(t, photos)
}

func TestImport_PickerFailure(t *testing.T) {
	s, _ := newTestPhotoService(t, &fakeFood{}, &fakeGeo{})
	_, err := s.Import(context.Background(), types.PickerFailed(types.PickerUnavailable, errors.New("no camera")))

	var pe *types.PickerError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, types.PickerUnavailable, pe.Kind)
}

func TestImport_InvalidImage(t *testing.T) {
	s, _ := newTestPhotoService(t, &fakeFood{}, &fakeGeo{})
	_, err := s.Import(context.Background(), types.PickerSuccess([]byte("garbage"), nil))
	assert.ErrorIs(t, err, types.ErrInvalidImage)
}

func TestImport_PrefillsDraft(t *testing.T) {
	food := &fakeFood{name: "Pad Thai"}
	s, c := newTestPhotoService(t, food, &fakeGeo{display: "Bangkok, Thailand", ok: true})
	coord := types.Coordinate{Latitude: 13.75, Longitude: 100.5}

	res, err := s.Import(context.Background(), types.PickerSuccess(pngImage(t, 40, 30), &coord))
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "Pad Thai", res.Draft.Name)
	assert.Equal(t, "Bangkok, Thailand", res.Draft.Location)
	require.NotNil(t, res.Draft.Coordinate)
	assert.Equal(t, coord, *res.Draft.Coordinate)
	assert.Equal(t, types.DefaultRating, res.Draft.Rating)

	// 保存的是 JPEG
	rc, err := c.OpenPhoto(context.Background(), res.Photo.ID)
	require.NoError(t, err)
	defer rc.Close()
	_, err = jpeg.DecodeConfig(rc)
	assert.NoError(t, err)
}

func TestImport_DegradesOnCollaboratorFailure(t *testing.T) {
	food := &fakeFood{err: &llm.IdentificationError{Kind: llm.ErrRateLimited}}
	s, c := newTestPhotoService(t, food, &fakeGeo{})
	coord := types.Coordinate{Latitude: 1, Longitude: 2}

	res, err := s.Import(context.Background(), types.PickerSuccess(pngImage(t, 10, 10), &coord))
	require.NoError(t, err)
	assert.Empty(t, res.Draft.Name)
	assert.Empty(t, res.Draft.Location)
	assert.Nil(t, res.Draft.Coordinate)

	_, ok := c.Photo(res.Photo.ID)
	assert.True(t, ok)
}

func TestThumbnail_Cached(t *testing.T) {
	s, c := newTestPhotoService(t, &fakeFood{}, &fakeGeo{})
	p, err := c.CreatePhoto(context.Background(), pngImage(t, 200, 100))
	require.NoError(t, err)

	thumb, err := s.Thumbnail(context.Background(), p.ID, 0)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)

	again, err := s.Thumbnail(context.Background(), p.ID, 64)
	require.NoError(t, err)
	assert.Equal(t, thumb, again)
	assert.Equal(t, 1, s.thumbs.Len())

	_, err = s.Thumbnail(context.Background(), "ghost", 64)
	assert.ErrorIs(t, err, types.ErrPhotoNotFound)
}

func TestThumbnail_GoneAfterDelete(t *testing.T) {
	ctx := context.Background()
	s, c := newTestPhotoService(t, &fakeFood{}, &fakeGeo{})

	p, err := c.CreatePhoto(ctx, pngImage(t, 80, 80))
	require.NoError(t, err)
	_, err = s.Thumbnail(ctx, p.ID, 32)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, p.ID))
	assert.Equal(t, 0, s.thumbs.Len())
	_, err = s.Thumbnail(ctx, p.ID, 32)
	assert.ErrorIs(t, err, types.ErrPhotoNotFound)

	// 选择模式直接走 Catalog.Remove，缓存还在也不能返回
	q, err := c.CreatePhoto(ctx, pngImage(t, 80, 80))
	require.NoError(t, err)
	_, err = s.Thumbnail(ctx, q.ID, 32)
	require.NoError(t, err)

	sel := NewSelection()
	sel.Toggle()
	sel.Tap(q.ID)
	resp := sel.ConfirmDelete(ctx, c)
	require.Equal(t, []string{q.ID}, resp.Deleted)
	_, err = s.Thumbnail(ctx, q.ID, 32)
	assert.ErrorIs(t, err, types.ErrPhotoNotFound)
}

func TestIdentifyStoredPhoto(t *testing.T) {
	food := &fakeFood{name: "Ramen"}
	s, c := newTestPhotoService(t, food, &fakeGeo{})
	p, err := c.CreatePhoto(context.Background(), []byte("img"))
	require.NoError(t, err)

	name, err := s.Identify(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ramen", name)
	assert.Equal(t, int32(1), food.calls.Load())
}
