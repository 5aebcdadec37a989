package handler

import (
	"Foodnote/pkg/response"
	"Foodnote/types"
	"time"

	"github.com/gin-gonic/gin"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// bindCriteria 解析 q/start/end/tz；日期支持 RFC3339 或 yyyy-mm-dd
func bindCriteria(c *gin.Context) (types.Criteria, error) {
	var q types.BrowseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return types.Criteria{}, response.NewError(response.CodeBadRequest, err.Error())
	}

	crit := types.Criteria{SearchText: q.Q, Loc: time.Local}
	if q.TZ != "" {
		loc, err := time.LoadLocation(q.TZ)
		if err != nil {
			return crit, response.NewError(response.CodeBadRequest, "无效的时区: "+q.TZ)
		}
		crit.Loc = loc
	}

	var err error
	if crit.Start, err = parseDate(q.Start, crit.Loc); err != nil {
		return crit, err
	}
	if crit.End, err = parseDate(q.End, crit.Loc); err != nil {
		return crit, err
	}
	return crit, nil
}

func parseDate(v string, loc *time.Location) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return &t, nil
		}
	}
	return nil, response.NewError(response.CodeBadRequest, "无效的日期: "+v)
}
