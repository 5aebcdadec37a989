package service

import (
	"Foodnote/config"
	"Foodnote/types"
)

var _ IBrowseService = (*BrowseService)(nil)

type IBrowseService interface {
	List(c types.Criteria) []types.PhotoItem
	ByLocation(c types.Criteria) []types.LocationGroup
	ByRating(c types.Criteria) []types.RatingGroup
	Map(c types.Criteria) []types.CountryAnnotation
}

// BrowseService 在 Catalog 快照上先过滤再分组
type BrowseService struct {
	Catalog ICatalog
	mapOpts types.MapOptions
}

func NewBrowseService(catalog ICatalog, conf *config.Config) *BrowseService {
	s := &BrowseService{Catalog: catalog}
	if conf != nil && conf.Map != nil {
		s.mapOpts.OmitUnplaced = conf.Map.OmitUnplaced
	}
	return s
}

func (s *BrowseService) filtered(c types.Criteria) ([]types.Photo, map[string]types.Note) {
	photos, notes := s.Catalog.Snapshot()
	return Filter(photos, notes, c), notes
}

func (s *BrowseService) List(c types.Criteria) []types.PhotoItem {
	photos, notes := s.filtered(c)
	items := make([]types.PhotoItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, itemOf(p, notes))
	}
	return items
}

func (s *BrowseService) ByLocation(c types.Criteria) []types.LocationGroup {
	return GroupByLocation(s.filtered(c))
}

func (s *BrowseService) ByRating(c types.Criteria) []types.RatingGroup {
	return GroupByRating(s.filtered(c))
}

func (s *BrowseService) Map(c types.Criteria) []types.CountryAnnotation {
	photos, notes := s.filtered(c)
	return GroupByCountry(photos, notes, s.mapOpts)
}
