package dao

import (
	"Foodnote/pkg/log"
	"Foodnote/pkg/snowflake"
	"Foodnote/types"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ Store = (*FileStore)(nil)

// FileStore 目录存储：照片是 <id>.jpg，笔记是 <noteID>.json
type FileStore struct {
	dir string
	now func() time.Time
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) CreatePhoto(ctx context.Context, data []byte) (types.Photo, error) {
	id := uuid.NewString()
	path := filepath.Join(s.dir, id+".jpg")
	if err := writeFileAtomic(s.dir, path, data); err != nil {
		return types.Photo{}, storeErr(OpWrite, id, err)
	}
	// 创建时间记录在文件的修改时间上
	now := s.now().Truncate(time.Microsecond)
	if err := os.Chtimes(path, now, now); err != nil {
		_ = os.Remove(path)
		return types.Photo{}, storeErr(OpWrite, id, err)
	}
	return types.Photo{ID: id, Ref: path, CreatedAt: now}, nil
}

func (s *FileStore) ListPhotos(ctx context.Context) ([]types.Photo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, storeErr(OpList, "", err)
	}
	photos := make([]types.Photo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !isJPEGName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		photos = append(photos, types.Photo{
			ID:        strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Ref:       filepath.Join(s.dir, e.Name()),
			CreatedAt: info.ModTime(),
		})
	}
	return photos, nil
}

func (s *FileStore) DeletePhoto(ctx context.Context, id string) error {
	path, err := s.photoPath(id)
	if err != nil {
		return storeErr(OpDelete, id, err)
	}
	if err := os.Remove(path); err != nil {
		return storeErr(OpDelete, id, err)
	}
	return nil
}

func (s *FileStore) OpenPhoto(ctx context.Context, photo types.Photo) (io.ReadCloser, error) {
	path := photo.Ref
	if path == "" {
		p, err := s.photoPath(photo.ID)
		if err != nil {
			return nil, err
		}
		path = p
	}
	return os.Open(path)
}

// SaveNote ID 为空时生成一个，文件名就是 ID
func (s *FileStore) SaveNote(ctx context.Context, note types.Note) error {
	if note.ID == "" {
		note.ID = snowflake.GenNoteID()
	}
	if !validName(note.ID) {
		return storeErr(OpWrite, note.ID, fs.ErrInvalid)
	}
	data, err := json.MarshalIndent(note, "", "  ")
	if err != nil {
		return storeErr(OpWrite, note.ID, err)
	}
	if err := writeFileAtomic(s.dir, filepath.Join(s.dir, note.ID+".json"), data); err != nil {
		return storeErr(OpWrite, note.ID, err)
	}
	return nil
}

// LoadNote 线性扫描目录下的 json，同一照片有多条时取最新的一条
func (s *FileStore) LoadNote(ctx context.Context, photoID string) (types.Note, bool, error) {
	notes, err := s.scanNotes(ctx, photoID)
	if err != nil {
		return types.Note{}, false, err
	}
	if len(notes) == 0 {
		return types.Note{}, false, nil
	}
	latest := notes[0]
	for _, n := range notes[1:] {
		if n.note.CreatedAt.After(latest.note.CreatedAt) {
			latest = n
		}
	}
	return latest.note, true, nil
}

func (s *FileStore) DeleteNote(ctx context.Context, photoID string) error {
	notes, err := s.scanNotes(ctx, photoID)
	if err != nil {
		return err
	}
	for _, n := range notes {
		if err := os.Remove(n.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return storeErr(OpDelete, n.note.ID, err)
		}
	}
	return nil
}

type noteFile struct {
	path string
	note types.Note
}

func (s *FileStore) scanNotes(ctx context.Context, photoID string) ([]noteFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, storeErr(OpList, photoID, err)
	}
	var out []noteFile
	for _, e := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var note types.Note
		if err := json.Unmarshal(data, &note); err != nil {
			log.L.Warn("skip unreadable note file", zap.String("path", path), zap.Error(err))
			continue
		}
		if note.PhotoID == photoID {
			out = append(out, noteFile{path: path, note: note})
		}
	}
	return out, nil
}

func (s *FileStore) photoPath(id string) (string, error) {
	if !validName(id) {
		return "", fs.ErrInvalid
	}
	for _, ext := range []string{".jpg", ".jpeg", ".JPG", ".JPEG"} {
		p := filepath.Join(s.dir, id+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}

// validName ID 直接拼进文件名，不能带路径分隔符，也不能是隐藏文件
func validName(id string) bool {
	return id != "" && !strings.HasPrefix(id, ".") && !strings.ContainsAny(id, `/\`)
}

func isJPEGName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

// writeFileAtomic 先写临时文件再 rename
func writeFileAtomic(dir, path string, data []byte) error {
	f, err := os.CreateTemp(dir, ".foodnote-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
