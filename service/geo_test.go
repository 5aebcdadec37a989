package service

import (
	"Foodnote/types"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeReverser struct {
	display string
	ok      bool
	calls   int
}

func (r *fakeReverser) Reverse(context.Context, float64, float64) (string, bool) {
	r.calls++
	return r.display, r.ok
}

type mapCache map[[2]float64]string

func (m mapCache) Get(_ context.Context, lat, lng float64) (string, bool) {
	v, ok := m[[2]float64{lat, lng}]
	return v, ok
}

func (m mapCache) Set(_ context.Context, lat, lng float64, v string) {
	m[[2]float64{lat, lng}] = v
}

func TestGeoService_CachesSuccess(t *testing.T) {
	r := &fakeReverser{display: "Paris, France", ok: true}
	s := &GeoService{reverser: r, cache: mapCache{}}
	coord := types.Coordinate{Latitude: 48.85, Longitude: 2.35}

	for i := 0; i < 3; i++ {
		got, ok := s.ReverseGeocode(context.Background(), coord)
		assert.True(t, ok)
		assert.Equal(t, "Paris, France", got)
	}
	assert.Equal(t, 1, r.calls)
}

func TestGeoService_FailureNotCached(t *testing.T) {
	r := &fakeReverser{}
	s := &GeoService{reverser: r, cache: mapCache{}}
	coord := types.Coordinate{Latitude: 1, Longitude: 1}

	_, ok := s.ReverseGeocode(context.Background(), coord)
	assert.False(t, ok)
	_, ok = s.ReverseGeocode(context.Background(), coord)
	assert.False(t, ok)
	assert.Equal(t, 2, r.calls)
}

func TestGeoService_InvalidCoordinate(t *testing.T) {
	r := &fakeReverser{display: "x", ok: true}
	s := &GeoService{reverser: r}

	_, ok := s.ReverseGeocode(context.Background(), types.Coordinate{Latitude: 91})
	assert.False(t, ok)
	assert.Zero(t, r.calls)
}
