package handler

import (
	"Foodnote/pkg/context"
	"Foodnote/pkg/log"
	"Foodnote/pkg/response"
	"Foodnote/service"
	"Foodnote/types"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadSize = 20 << 20

type Photo struct {
	PhotoService  service.IPhotoService
	NoteService   service.INoteService
	BrowseService service.IBrowseService
}

func (h *Photo) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/photos")
	g.POST("", context.Wrap(h.Upload))
	g.GET("", context.Wrap(h.List))
	g.GET("/:id/image", context.Wrap(h.Image))
	g.GET("/:id/thumbnail", context.Wrap(h.Thumbnail))
	g.DELETE("/:id", context.Wrap(h.Delete))
	g.PUT("/:id/note", context.Wrap(h.SaveNote))
	g.GET("/:id/note", context.Wrap(h.GetNote))
	g.PUT("/:id/note/place", context.Wrap(h.PickPlace))
	g.POST("/:id/identify", context.Wrap(h.Identify))
}

// Upload 上传照片，返回照片和预填的笔记表单；canceled=true 表示用户取消选图
func (h *Photo) Upload(c *gin.Context) error {
	res, err := h.PhotoService.Import(c.Request.Context(), pickerResult(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, res)
	return nil
}

func pickerResult(c *gin.Context) types.PickerResult {
	if canceled, _ := strconv.ParseBool(c.PostForm("canceled")); canceled {
		return types.PickerCanceledResult()
	}

	header, err := c.FormFile("image")
	if err != nil {
		return types.PickerFailed(types.PickerUnavailable, err)
	}
	if header.Size > maxUploadSize {
		return types.PickerFailed(types.PickerUnknown, errors.New("image size exceeds 20MB"))
	}
	file, err := header.Open()
	if err != nil {
		return types.PickerFailed(types.PickerUnknown, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return types.PickerFailed(types.PickerUnknown, err)
	}

	var coord *types.Coordinate
	lat, latErr := strconv.ParseFloat(c.PostForm("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if latErr == nil && lngErr == nil {
		if cc := (types.Coordinate{Latitude: lat, Longitude: lng}); cc.Valid() {
			coord = &cc
		}
	}
	return types.PickerSuccess(data, coord)
}

func (h *Photo) List(c *gin.Context) error {
	crit, err := bindCriteria(c)
	if err != nil {
		return err
	}
	response.Success(c, h.BrowseService.List(crit))
	return nil
}

func (h *Photo) Image(c *gin.Context) error {
	rc, err := h.PhotoService.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		return bizError(err)
	}
	defer rc.Close()
	c.DataFromReader(http.StatusOK, -1, "image/jpeg", rc, nil)
	return nil
}

func (h *Photo) Thumbnail(c *gin.Context) error {
	size, _ := strconv.Atoi(c.Query("size"))
	data, err := h.PhotoService.Thumbnail(c.Request.Context(), c.Param("id"), size)
	if err != nil {
		return bizError(err)
	}
	c.Header("Cache-Control", "private, max-age=86400")
	c.Data(http.StatusOK, "image/jpeg", data)
	return nil
}

func (h *Photo) Delete(c *gin.Context) error {
	if err := h.PhotoService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

// SaveNote 保存笔记，同一照片再次保存会覆盖
func (h *Photo) SaveNote(c *gin.Context) error {
	var req types.UpsertNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(response.CodeBadRequest, err.Error())
	}
	draft, err := req.Draft()
	if err != nil {
		return bizError(err)
	}
	note, err := h.NoteService.SaveNote(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, note)
	return nil
}

func (h *Photo) GetNote(c *gin.Context) error {
	note, err := h.NoteService.GetNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, note)
	return nil
}

// PickPlace 地图选点：位置总是覆盖，餐厅已填写时保留
func (h *Photo) PickPlace(c *gin.Context) error {
	var req types.PlacePick
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(response.CodeBadRequest, err.Error())
	}
	note, err := h.NoteService.PickPlace(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, note)
	return nil
}

// Identify 识别失败时返回空菜名
func (h *Photo) Identify(c *gin.Context) error {
	name, err := h.PhotoService.Identify(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, types.ErrPhotoNotFound) {
			return bizError(err)
		}
		log.L.Warn("identify food failed", zap.String("photo_id", c.Param("id")), zap.Error(err))
	}
	response.Success(c, types.IdentifyResponse{Name: name})
	return nil
}
