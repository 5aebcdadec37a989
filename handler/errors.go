package handler

import (
	"Foodnote/dao"
	"Foodnote/pkg/response"
	"Foodnote/types"
	"errors"
)

// bizError 把领域错误转换为业务错误码
func bizError(err error) error {
	if err == nil {
		return nil
	}
	var pe *types.PickerError
	switch {
	case errors.Is(err, types.ErrPhotoNotFound), errors.Is(err, types.ErrNoteNotFound):
		return response.NewError(response.CodeNotFound, err.Error())
	case errors.Is(err, types.ErrNameRequired),
		errors.Is(err, types.ErrInvalidRating),
		errors.Is(err, types.ErrHalfCoord),
		errors.Is(err, types.ErrInvalidImage):
		return response.NewError(response.CodeBadRequest, err.Error())
	case errors.As(err, &pe):
		return response.NewError(response.CodeBadRequest, pe.Error())
	case errors.Is(err, dao.ErrWrite):
		return response.NewError(response.CodeInternal, "保存失败")
	case errors.Is(err, dao.ErrDelete):
		return response.NewError(response.CodeInternal, "删除失败")
	case errors.Is(err, dao.ErrList):
		return response.NewError(response.CodeInternal, "读取失败")
	}
	return err
}
