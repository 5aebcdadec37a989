package server

import (
	"Foodnote/handler"
)

type Handlers struct {
	Photo     *handler.Photo
	Browse    *handler.Browse
	Selection *handler.Selection
	Geocode   *handler.Geocode
}
