package handler

import (
	"Foodnote/pkg/context"
	"Foodnote/pkg/response"
	"Foodnote/service"

	"github.com/gin-gonic/gin"
)

type Browse struct {
	BrowseService service.IBrowseService
}

func (h *Browse) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1")
	g.GET("/browse/location", context.Wrap(h.ByLocation))
	g.GET("/browse/rating", context.Wrap(h.ByRating))
	g.GET("/map", context.Wrap(h.Map))
}

// ByLocation 按地点和餐厅分组
func (h *Browse) ByLocation(c *gin.Context) error {
	crit, err := bindCriteria(c)
	if err != nil {
		return err
	}
	response.Success(c, h.BrowseService.ByLocation(crit))
	return nil
}

func (h *Browse) ByRating(c *gin.Context) error {
	crit, err := bindCriteria(c)
	if err != nil {
		return err
	}
	response.Success(c, h.BrowseService.ByRating(crit))
	return nil
}

// Map 每个国家一个图钉
func (h *Browse) Map(c *gin.Context) error {
	crit, err := bindCriteria(c)
	if err != nil {
		return err
	}
	response.Success(c, h.BrowseService.Map(crit))
	return nil
}
