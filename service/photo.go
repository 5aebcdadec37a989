package service

import (
	"Foodnote/config"
	"Foodnote/pkg/log"
	"Foodnote/pkg/utils"
	"Foodnote/types"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	photoQuality     = 90
	thumbnailQuality = 80
	maxThumbnailSize = 2048
)

var _ IPhotoService = (*PhotoService)(nil)

var errFoodDisabled = errors.New("food identification disabled")

type IPhotoService interface {
	// Import 保存选中的照片，并预填笔记表单
	Import(ctx context.Context, r types.PickerResult) (*types.ImportResult, error)
	// Identify 识别已保存照片里的菜品
	Identify(ctx context.Context, photoID string) (string, error)
	// Thumbnail 返回缩略图 JPEG
	Thumbnail(ctx context.Context, photoID string, size int) ([]byte, error)
	Open(ctx context.Context, photoID string) (io.ReadCloser, error)
	Delete(ctx context.Context, photoID string) error
}

type PhotoService struct {
	Catalog ICatalog
	Food    FoodIdentifier
	Geo     Geocoder

	thumbs      *lru.Cache[string, []byte]
	defaultSize int
}

func NewPhotoService(catalog ICatalog, food FoodIdentifier, geo Geocoder, conf *config.Config) (*PhotoService, error) {
	size, defaultSize := 256, 320
	if conf != nil && conf.Thumbnail != nil {
		size, defaultSize = conf.Thumbnail.CacheSize, conf.Thumbnail.DefaultSize
	}
	thumbs, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &PhotoService{
		Catalog:     catalog,
		Food:        food,
		Geo:         geo,
		thumbs:      thumbs,
		defaultSize: defaultSize,
	}, nil
}

// Import 取消时返回 nil, nil；识别菜名和地址失败不影响保存
func (s *PhotoService) Import(ctx context.Context, r types.PickerResult) (*types.ImportResult, error) {
	if r.Err != nil {
		if r.Canceled() {
			return nil, nil
		}
		return nil, r.Err
	}
	if len(r.Image) == 0 {
		return nil, &types.PickerError{Kind: types.PickerUnknown, Err: utils.ErrEmptyImage}
	}

	data, err := utils.NormalizeJPEG(r.Image, photoQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidImage, err)
	}
	photo, err := s.Catalog.CreatePhoto(ctx, data)
	if err != nil {
		return nil, err
	}

	var (
		name     string
		location string
		resolved bool
	)
	var eg errgroup.Group
	if s.Food != nil {
		eg.Go(func() error {
			n, err := s.Food.Identify(ctx, data)
			if err != nil {
				log.L.Warn("identify food failed", zap.String("photo_id", photo.ID), zap.Error(err))
				return nil
			}
			name = n
			return nil
		})
	}
	if r.Coordinate != nil && s.Geo != nil {
		eg.Go(func() error {
			location, resolved = s.Geo.ReverseGeocode(ctx, *r.Coordinate)
			return nil
		})
	}
	_ = eg.Wait()

	draft := types.NewDraft()
	draft.Name = name
	if resolved {
		draft.ApplyResolvedLocation(location, *r.Coordinate)
	}

	log.L.Info("photo imported", zap.String("photo_id", photo.ID),
		zap.Bool("named", name != ""), zap.Bool("located", resolved))
	return &types.ImportResult{Photo: photo, Draft: draft}, nil
}

func (s *PhotoService) Identify(ctx context.Context, photoID string) (string, error) {
	data, err := s.read(ctx, photoID)
	if err != nil {
		return "", err
	}
	if s.Food == nil {
		return "", errFoodDisabled
	}
	return s.Food.Identify(ctx, data)
}

func (s *PhotoService) Thumbnail(ctx context.Context, photoID string, size int) ([]byte, error) {
	if size <= 0 {
		size = s.defaultSize
	}
	size = min(size, maxThumbnailSize)

	// 已删除的照片不能再从缓存里返回
	if _, ok := s.Catalog.Photo(photoID); !ok {
		return nil, types.ErrPhotoNotFound
	}
	key := thumbKey(photoID, size)
	if b, ok := s.thumbs.Get(key); ok {
		return b, nil
	}
	data, err := s.read(ctx, photoID)
	if err != nil {
		return nil, err
	}
	thumb, err := utils.ResizeJPEG(data, size, thumbnailQuality)
	if err != nil {
		return nil, err
	}
	s.thumbs.Add(key, thumb)
	return thumb, nil
}

func (s *PhotoService) Open(ctx context.Context, photoID string) (io.ReadCloser, error) {
	return s.Catalog.OpenPhoto(ctx, photoID)
}

func (s *PhotoService) Delete(ctx context.Context, photoID string) error {
	if err := s.Catalog.Remove(ctx, photoID); err != nil {
		return err
	}
	s.purgeThumbs(photoID)
	return nil
}

func thumbKey(photoID string, size int) string {
	return fmt.Sprintf("%s@%d", photoID, size)
}

func (s *PhotoService) purgeThumbs(photoID string) {
	prefix := photoID + "@"
	for _, k := range s.thumbs.Keys() {
		if strings.HasPrefix(k, prefix) {
			s.thumbs.Remove(k)
		}
	}
}

func (s *PhotoService) read(ctx context.Context, photoID string) ([]byte, error) {
	rc, err := s.Catalog.OpenPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
