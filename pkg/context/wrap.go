package context

import (
	"Foodnote/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CtxSubject   = "subject"
	CtxSessionID = "session_id"

	HeaderSessionID = "X-Session-ID"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			_ = c.Error(err)
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				c.JSON(http.StatusOK, response.Response{
					Code: be.Code,
					Msg:  be.Msg,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: response.CodeInternal,
				Msg:  err.Error(),
			})
		}
	}
}

// GetSessionID 选择模式按客户端会话隔离，没有会话头时所有请求共享 default
func GetSessionID(c *gin.Context) string {
	if v, ok := c.Get(CtxSessionID); ok {
		if sid, ok := v.(string); ok && sid != "" {
			return sid
		}
	}
	if sid := c.GetHeader(HeaderSessionID); sid != "" {
		return sid
	}
	return "default"
}
