package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewCatalog,
	wire.Bind(new(ICatalog), new(*Catalog)),

	NewGeoService,
	wire.Bind(new(Geocoder), new(*GeoService)),

	NewFoodIdentifier,

	NewPhotoService,
	wire.Bind(new(IPhotoService), new(*PhotoService)),

	wire.Struct(new(NoteService), "*"),
	wire.Bind(new(INoteService), new(*NoteService)),

	NewBrowseService,
	wire.Bind(new(IBrowseService), new(*BrowseService)),

	NewSelectionService,
	wire.Bind(new(ISelectionService), new(*SelectionService)),
)
