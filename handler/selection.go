package handler

import (
	"Foodnote/pkg/context"
	"Foodnote/pkg/response"
	"Foodnote/service"

	"github.com/gin-gonic/gin"
)

// Selection 批量删除，按 X-Session-ID 区分客户端
type Selection struct {
	SelectionService service.ISelectionService
}

func (h *Selection) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/selection")
	g.GET("", context.Wrap(h.State))
	g.POST("/toggle", context.Wrap(h.Toggle))
	g.POST("/tap/:id", context.Wrap(h.Tap))
	g.POST("/delete", context.Wrap(h.Delete))
}

func (h *Selection) State(c *gin.Context) error {
	response.Success(c, h.SelectionService.State(context.GetSessionID(c)))
	return nil
}

func (h *Selection) Toggle(c *gin.Context) error {
	response.Success(c, h.SelectionService.Toggle(context.GetSessionID(c)))
	return nil
}

func (h *Selection) Tap(c *gin.Context) error {
	response.Success(c, h.SelectionService.Tap(context.GetSessionID(c), c.Param("id")))
	return nil
}

func (h *Selection) Delete(c *gin.Context) error {
	resp := h.SelectionService.ConfirmDelete(c.Request.Context(), context.GetSessionID(c))
	response.Success(c, resp)
	return nil
}
