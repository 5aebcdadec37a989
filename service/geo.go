package service

import (
	"Foodnote/dao/cache"
	"Foodnote/pkg/geocode"
	"Foodnote/types"
	"context"
)

// Geocoder 坐标转可读地址，失败返回 false
type Geocoder interface {
	ReverseGeocode(ctx context.Context, coord types.Coordinate) (string, bool)
}

type reverser interface {
	Reverse(ctx context.Context, lat, lng float64) (string, bool)
}

var _ Geocoder = (*GeoService)(nil)

// GeoService 反向地理编码加缓存，只缓存成功的结果
type GeoService struct {
	reverser reverser
	cache    cache.GeocodeCache
}

func NewGeoService(g *geocode.Google, c cache.GeocodeCache) *GeoService {
	return &GeoService{reverser: g, cache: c}
}

func (s *GeoService) ReverseGeocode(ctx context.Context, coord types.Coordinate) (string, bool) {
	if !coord.Valid() {
		return "", false
	}
	if s.cache != nil {
		if v, ok := s.cache.Get(ctx, coord.Latitude, coord.Longitude); ok {
			return v, true
		}
	}
	display, ok := s.reverser.Reverse(ctx, coord.Latitude, coord.Longitude)
	if !ok {
		return "", false
	}
	if s.cache != nil {
		s.cache.Set(ctx, coord.Latitude, coord.Longitude, display)
	}
	return display, true
}
