package handler

import (
	"Foodnote/pkg/context"
	"Foodnote/pkg/response"
	"Foodnote/service"
	"Foodnote/types"

	"github.com/gin-gonic/gin"
)

type Geocode struct {
	Geo service.Geocoder
}

type reverseQuery struct {
	Lat *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lng *float64 `form:"lng" binding:"required,min=-180,max=180"`
}

func (h *Geocode) RegisterRouter(r gin.IRouter) {
	r.GET("/v1/geocode/reverse", context.Wrap(h.Reverse))
}

func (h *Geocode) Reverse(c *gin.Context) error {
	var q reverseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return response.NewError(response.CodeBadRequest, err.Error())
	}
	location, ok := h.Geo.ReverseGeocode(c.Request.Context(), types.Coordinate{Latitude: *q.Lat, Longitude: *q.Lng})
	response.Success(c, types.ReverseGeocodeResponse{Location: location, Found: ok})
	return nil
}
