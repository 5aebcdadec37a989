package types

import (
	"errors"
	"fmt"
	"time"
)

// Photo 一张已保存的照片，创建后不会再修改
type Photo struct {
	ID        string    `json:"id"`
	Ref       string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Coordinate 经纬度
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// Valid 经纬度是否在合法范围内
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// PhotoItem 列表中的一项，带上可选的笔记
type PhotoItem struct {
	Photo
	Note *Note `json:"note,omitempty"`
}

// ImportResult 上传完成后返回照片和预填好的表单
type ImportResult struct {
	Photo Photo     `json:"photo"`
	Draft NoteDraft `json:"draft"`
}

// IdentifyResponse 菜品识别结果，失败时 Name 为空
type IdentifyResponse struct {
	Name string `json:"name"`
}

// ReverseGeocodeResponse 反向地理编码结果
type ReverseGeocodeResponse struct {
	Location string `json:"location"`
	Found    bool   `json:"found"`
}

// ErrInvalidImage 上传内容无法解码为图片
var ErrInvalidImage = errors.New("invalid image")
