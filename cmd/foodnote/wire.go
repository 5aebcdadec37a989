//go:build wireinject
// +build wireinject

package main

import (
	"Foodnote/config"
	"Foodnote/dao"
	"Foodnote/handler"
	"Foodnote/pkg/client"
	"Foodnote/pkg/database"
	"Foodnote/pkg/geocode"
	"Foodnote/pkg/server"
	"Foodnote/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		config.ProvideGeocoderConfig,
		config.ProvideOpenAIConfig,
		geocode.NewGoogle,
		server.NewGinEngine,

		wire.Struct(new(handler.Photo), "*"),
		wire.Struct(new(handler.Browse), "*"),
		wire.Struct(new(handler.Selection), "*"),
		wire.Struct(new(handler.Geocode), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,
		service.ProviderSet,
	)
	return nil, nil
}
