package service

import (
	"Foodnote/types"
	"context"
)

var _ INoteService = (*NoteService)(nil)

type INoteService interface {
	// SaveNote 保存表单，同一照片重复保存会覆盖
	SaveNote(ctx context.Context, photoID string, draft types.NoteDraft) (types.Note, error)
	GetNote(ctx context.Context, photoID string) (types.Note, error)
	// PickPlace 把地图选点应用到已有笔记上，餐厅只在为空时填充
	PickPlace(ctx context.Context, photoID string, pick types.PlacePick) (types.Note, error)
}

type NoteService struct {
	Catalog ICatalog
}

func (s *NoteService) SaveNote(ctx context.Context, photoID string, draft types.NoteDraft) (types.Note, error) {
	note, err := draft.Build(photoID)
	if err != nil {
		return types.Note{}, err
	}
	return s.Catalog.UpsertNote(ctx, note)
}

func (s *NoteService) GetNote(ctx context.Context, photoID string) (types.Note, error) {
	if _, ok := s.Catalog.Photo(photoID); !ok {
		return types.Note{}, types.ErrPhotoNotFound
	}
	n, ok := s.Catalog.Note(photoID)
	if !ok {
		return types.Note{}, types.ErrNoteNotFound
	}
	return n, nil
}

func (s *NoteService) PickPlace(ctx context.Context, photoID string, pick types.PlacePick) (types.Note, error) {
	existing, err := s.GetNote(ctx, photoID)
	if err != nil {
		return types.Note{}, err
	}
	coord, ok := pick.Coordinate()
	if !ok {
		return types.Note{}, types.ErrHalfCoord
	}
	draft := types.DraftFromNote(existing)
	draft.ApplyPlacePick(pick.Address, pick.PlaceName, coord)
	return s.SaveNote(ctx, photoID, draft)
}
