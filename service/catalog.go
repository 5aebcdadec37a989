package service

import (
	"Foodnote/config"
	"Foodnote/dao"
	"Foodnote/pkg/log"
	"Foodnote/pkg/snowflake"
	"Foodnote/types"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

var _ ICatalog = (*Catalog)(nil)

type ICatalog interface {
	Load(ctx context.Context) error
	Add(photo types.Photo)
	CreatePhoto(ctx context.Context, data []byte) (types.Photo, error)
	UpsertNote(ctx context.Context, note types.Note) (types.Note, error)
	Remove(ctx context.Context, photoID string) error
	Snapshot() ([]types.Photo, map[string]types.Note)
	Photo(id string) (types.Photo, bool)
	Note(photoID string) (types.Note, bool)
	OpenPhoto(ctx context.Context, id string) (io.ReadCloser, error)
}

// Catalog 内存中的照片与笔记，写操作串行
type Catalog struct {
	store       dao.Store
	concurrency int
	now         func() time.Time

	mu     sync.RWMutex
	photos []types.Photo
	notes  map[string]types.Note
}

func NewCatalog(store dao.Store, conf *config.Config) *Catalog {
	concurrency := 8
	if conf != nil && conf.Catalog != nil && conf.Catalog.LoadConcurrency > 0 {
		concurrency = conf.Catalog.LoadConcurrency
	}
	return &Catalog{
		store:       store,
		concurrency: concurrency,
		now:         time.Now,
		notes:       make(map[string]types.Note),
	}
}

// Load 从存储重建，照片按时间倒序；单条笔记读取失败视为没有笔记
func (c *Catalog) Load(ctx context.Context) error {
	photos, err := c.store.ListPhotos(ctx)
	if err != nil {
		return err
	}
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].CreatedAt.After(photos[j].CreatedAt)
	})

	type loaded struct {
		note types.Note
		ok   bool
	}
	results := make([]loaded, len(photos))
	p := pool.New().WithMaxGoroutines(c.concurrency)
	for i := range photos {
		p.Go(func() {
			note, ok, err := c.store.LoadNote(ctx, photos[i].ID)
			if err != nil {
				log.L.Warn("load note failed", zap.String("photo_id", photos[i].ID), zap.Error(err))
				return
			}
			results[i] = loaded{note: note, ok: ok}
		})
	}
	p.Wait()

	notes := make(map[string]types.Note, len(photos))
	for i, r := range results {
		if r.ok {
			notes[photos[i].ID] = r.note
		}
	}

	c.mu.Lock()
	c.photos = photos
	c.notes = notes
	c.updateGauges()
	c.mu.Unlock()

	log.L.Info("catalog loaded", zap.Int("photos", len(photos)), zap.Int("notes", len(notes)))
	return nil
}

// Add 新照片插到最前面，不重新排序
func (c *Catalog) Add(photo types.Photo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.photos = append([]types.Photo{photo}, c.photos...)
	c.updateGauges()
}

func (c *Catalog) CreatePhoto(ctx context.Context, data []byte) (types.Photo, error) {
	photo, err := c.store.CreatePhoto(ctx, data)
	if err != nil {
		return types.Photo{}, err
	}
	c.Add(photo)
	return photo, nil
}

// UpsertNote 校验后写入存储；已有笔记时沿用原 ID 和创建时间
func (c *Catalog) UpsertNote(ctx context.Context, note types.Note) (types.Note, error) {
	if err := note.Validate(); err != nil {
		return types.Note{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasPhoto(note.PhotoID) {
		return types.Note{}, types.ErrPhotoNotFound
	}
	if existing, ok := c.notes[note.PhotoID]; ok {
		note.ID = existing.ID
		note.CreatedAt = existing.CreatedAt
	}
	if note.ID == "" {
		note.ID = snowflake.GenNoteID()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = c.now()
	}

	if err := c.store.SaveNote(ctx, note); err != nil {
		return types.Note{}, err
	}
	c.notes[note.PhotoID] = note
	c.updateGauges()
	return note, nil
}

// Remove 删除照片失败直接返回；笔记删除失败只记录日志
func (c *Catalog) Remove(ctx context.Context, photoID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(photoID)
	if idx < 0 {
		return types.ErrPhotoNotFound
	}
	if err := c.store.DeletePhoto(ctx, photoID); err != nil {
		return err
	}
	if err := c.store.DeleteNote(ctx, photoID); err != nil {
		log.L.Warn("delete note failed", zap.String("photo_id", photoID), zap.Error(err))
	}

	c.photos = append(c.photos[:idx:idx], c.photos[idx+1:]...)
	delete(c.notes, photoID)
	c.updateGauges()
	return nil
}

// Snapshot 返回副本，调用方可以随意使用
func (c *Catalog) Snapshot() ([]types.Photo, map[string]types.Note) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	photos := make([]types.Photo, len(c.photos))
	copy(photos, c.photos)
	notes := make(map[string]types.Note, len(c.notes))
	for k, v := range c.notes {
		notes[k] = v
	}
	return photos, notes
}

func (c *Catalog) Photo(id string) (types.Photo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.photos[i], true
	}
	return types.Photo{}, false
}

func (c *Catalog) Note(photoID string) (types.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.notes[photoID]
	return n, ok
}

func (c *Catalog) OpenPhoto(ctx context.Context, id string) (io.ReadCloser, error) {
	photo, ok := c.Photo(id)
	if !ok {
		return nil, types.ErrPhotoNotFound
	}
	return c.store.OpenPhoto(ctx, photo)
}

func (c *Catalog) hasPhoto(id string) bool {
	return c.indexOf(id) >= 0
}

func (c *Catalog) indexOf(id string) int {
	for i := range c.photos {
		if c.photos[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) updateGauges() {
	catalogPhotos.Set(float64(len(c.photos)))
	catalogNotes.Set(float64(len(c.notes)))
}
