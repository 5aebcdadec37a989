package service

import (
	"Foodnote/pkg/log"
	"Foodnote/types"
	"context"
	"sort"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// PhotoRemover 批量删除时逐张调用
type PhotoRemover interface {
	Remove(ctx context.Context, photoID string) error
}

// Selection 选择模式：进入时清空，退出时清空，未进入时点选无效
type Selection struct {
	mu       sync.Mutex
	active   bool
	selected map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{selected: make(map[string]struct{})}
}

func (s *Selection) Toggle() types.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = !s.active
	s.selected = make(map[string]struct{})
	return s.stateLocked()
}

// Tap 切换某张照片的选中状态
func (s *Selection) Tap(photoID string) types.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		if _, ok := s.selected[photoID]; ok {
			delete(s.selected, photoID)
		} else {
			s.selected[photoID] = struct{}{}
		}
	}
	return s.stateLocked()
}

func (s *Selection) State() types.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// ConfirmDelete 逐张删除，互不影响也不回滚；完成后清空并退出选择模式
func (s *Selection) ConfirmDelete(ctx context.Context, r PhotoRemover) types.DeleteSelectionResponse {
	s.mu.Lock()
	ids := s.sortedLocked()
	s.selected = make(map[string]struct{})
	s.active = false
	s.mu.Unlock()

	resp := types.DeleteSelectionResponse{Deleted: make([]string, 0, len(ids))}
	for _, id := range ids {
		if err := r.Remove(ctx, id); err != nil {
			log.L.Warn("delete selected photo failed", zap.String("photo_id", id), zap.Error(err))
			if resp.Failed == nil {
				resp.Failed = make(map[string]string)
			}
			resp.Failed[id] = err.Error()
			continue
		}
		resp.Deleted = append(resp.Deleted, id)
	}
	return resp
}

func (s *Selection) stateLocked() types.SelectionState {
	return types.SelectionState{Active: s.active, Selected: s.sortedLocked()}
}

func (s *Selection) sortedLocked() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var _ ISelectionService = (*SelectionService)(nil)

type ISelectionService interface {
	Toggle(sessionID string) types.SelectionState
	Tap(sessionID, photoID string) types.SelectionState
	State(sessionID string) types.SelectionState
	ConfirmDelete(ctx context.Context, sessionID string) types.DeleteSelectionResponse
}

// SelectionService 每个客户端会话一份选择状态
type SelectionService struct {
	Catalog  ICatalog
	sessions cmap.ConcurrentMap[string, *Selection]
}

func NewSelectionService(catalog ICatalog) *SelectionService {
	return &SelectionService{
		Catalog:  catalog,
		sessions: cmap.New[*Selection](),
	}
}

func (s *SelectionService) session(id string) *Selection {
	return s.sessions.Upsert(id, nil, func(exist bool, old, _ *Selection) *Selection {
		if exist {
			return old
		}
		return NewSelection()
	})
}

func (s *SelectionService) Toggle(sessionID string) types.SelectionState {
	return s.session(sessionID).Toggle()
}

func (s *SelectionService) Tap(sessionID, photoID string) types.SelectionState {
	return s.session(sessionID).Tap(photoID)
}

func (s *SelectionService) State(sessionID string) types.SelectionState {
	return s.session(sessionID).State()
}

func (s *SelectionService) ConfirmDelete(ctx context.Context, sessionID string) types.DeleteSelectionResponse {
	return s.session(sessionID).ConfirmDelete(ctx, s.Catalog)
}
