//go:build wireinject

package dao

import (
	"Foodnote/dao/cache"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewBlob,
	NewStore,
	cache.NewGeocodeCache,
)
