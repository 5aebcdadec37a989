package service

import (
	"Foodnote/dao"
	"Foodnote/types"
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var base = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func at(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

func photo(id string, created time.Time) types.Photo {
	return types.Photo{ID: id, CreatedAt: created}
}

func note(photoID, name, restaurant, location string, rating int) types.Note {
	return types.Note{ID: "n-" + photoID, PhotoID: photoID, Name: name, Restaurant: restaurant, Location: location, Rating: rating}
}

func ids(photos []types.Photo) []string {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		out = append(out, p.ID)
	}
	return out
}

func itemIDs(items []types.PhotoItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

var errBoom = errors.New("boom")

// memStore 内存实现，可以注入错误
type memStore struct {
	mu        sync.Mutex
	photos    map[string]types.Photo
	blobs     map[string][]byte
	notes     map[string]types.Note
	seq       int
	now       func() time.Time
	listErr   error
	loadErr   map[string]error
	deleteErr map[string]error
	saveErr   error
	saves     int
}

var _ dao.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		photos:    make(map[string]types.Photo),
		blobs:     make(map[string][]byte),
		notes:     make(map[string]types.Note),
		loadErr:   make(map[string]error),
		deleteErr: make(map[string]error),
		now:       time.Now,
	}
}

func (s *memStore) put(p types.Photo, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos[p.ID] = p
	s.blobs[p.ID] = data
}

func (s *memStore) CreatePhoto(_ context.Context, data []byte) (types.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	p := types.Photo{ID: "photo-" + string(rune('a'+s.seq-1)), CreatedAt: s.now()}
	s.photos[p.ID] = p
	s.blobs[p.ID] = data
	return p, nil
}

func (s *memStore) ListPhotos(context.Context) ([]types.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, &dao.StoreError{Op: dao.OpList, Err: s.listErr}
	}
	out := make([]types.Photo, 0, len(s.photos))
	for _, p := range s.photos {
		out = append(out, p)
	}
	return out, nil
}

func (s *memStore) DeletePhoto(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteErr[id]; err != nil {
		return &dao.StoreError{Op: dao.OpDelete, ID: id, Err: err}
	}
	delete(s.photos, id)
	delete(s.blobs, id)
	return nil
}

func (s *memStore) OpenPhoto(_ context.Context, p types.Photo) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[p.ID]
	if !ok {
		return nil, errors.New("no such photo")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memStore) SaveNote(_ context.Context, n types.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return &dao.StoreError{Op: dao.OpWrite, ID: n.ID, Err: s.saveErr}
	}
	s.saves++
	s.notes[n.PhotoID] = n
	return nil
}

func (s *memStore) LoadNote(_ context.Context, photoID string) (types.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadErr[photoID]; err != nil {
		return types.Note{}, false, err
	}
	n, ok := s.notes[photoID]
	return n, ok, nil
}

func (s *memStore) DeleteNote(_ context.Context, photoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notes, photoID)
	return nil
}

func (s *memStore) hasNote(photoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.notes[photoID]
	return ok
}
