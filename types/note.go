package types

import (
	"errors"
	"strings"
	"time"
)

// 评分范围
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

var (
	ErrNameRequired  = errors.New("note name is required")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrPhotoNotFound = errors.New("photo not found")
	ErrNoteNotFound  = errors.New("note not found")
	ErrHalfCoord     = errors.New("latitude and longitude must be set together")
)

// Note 照片对应的笔记，一张照片最多一条
// JSON 字段名与客户端本地存档保持一致
type Note struct {
	ID          string    `json:"id"`
	PhotoID     string    `json:"imageId"`
	Name        string    `json:"name"`
	Restaurant  string    `json:"restaurant"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdDate"`
}

// Coordinate 返回笔记上已解析的坐标
func (n Note) Coordinate() (Coordinate, bool) {
	if n.Latitude == nil || n.Longitude == nil {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: *n.Latitude, Longitude: *n.Longitude}, true
}

// NoteDraft 添加笔记表单的内容，保存前可以被自动填充
type NoteDraft struct {
	Name        string      `json:"name"`
	Restaurant  string      `json:"restaurant"`
	Location    string      `json:"location"`
	Coordinate  *Coordinate `json:"coordinate,omitempty"`
	Rating      int         `json:"rating"`
	Description string      `json:"description"`
}

// NewDraft 新表单默认三星
func NewDraft() NoteDraft {
	return NoteDraft{Rating: DefaultRating}
}

// DraftFromNote 编辑已有笔记
func DraftFromNote(n Note) NoteDraft {
	d := NoteDraft{
		Name:        n.Name,
		Restaurant:  n.Restaurant,
		Location:    n.Location,
		Rating:      n.Rating,
		Description: n.Description,
	}
	if c, ok := n.Coordinate(); ok {
		d.Coordinate = &c
	}
	return d
}

// ApplyPlacePick 地图选点：位置总是覆盖，餐厅只在为空时填充
func (d *NoteDraft) ApplyPlacePick(address, placeName string, coord Coordinate) {
	d.Location = address
	d.Coordinate = &coord
	if d.Restaurant == "" && placeName != "" {
		d.Restaurant = placeName
	}
}

// ApplyResolvedLocation 反向地理编码的结果只填充空的位置字段
func (d *NoteDraft) ApplyResolvedLocation(display string, coord Coordinate) bool {
	if d.Location != "" || display == "" {
		return false
	}
	d.Location = display
	d.Coordinate = &coord
	return true
}

// Build 校验表单并生成笔记，ID 与创建时间由调用方补充
func (d NoteDraft) Build(photoID string) (Note, error) {
	return NewNote(photoID, d.Name, d.Restaurant, d.Location, d.Coordinate, d.Rating, d.Description)
}

// NewNote 构造笔记：名称不能为空，评分 0 视为默认值，其余越界值拒绝
func NewNote(photoID, name, restaurant, location string, coord *Coordinate, rating int, description string) (Note, error) {
	if strings.TrimSpace(name) == "" {
		return Note{}, ErrNameRequired
	}
	if rating == 0 {
		rating = DefaultRating
	}
	if rating < MinRating || rating > MaxRating {
		return Note{}, ErrInvalidRating
	}
	n := Note{
		PhotoID:     photoID,
		Name:        name,
		Restaurant:  restaurant,
		Location:    location,
		Rating:      rating,
		Description: description,
	}
	if coord != nil {
		lat, lng := coord.Latitude, coord.Longitude
		n.Latitude = &lat
		n.Longitude = &lng
	}
	return n, nil
}

// Validate 检查已有笔记是否满足保存条件
func (n Note) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return ErrNameRequired
	}
	if n.Rating < MinRating || n.Rating > MaxRating {
		return ErrInvalidRating
	}
	if (n.Latitude == nil) != (n.Longitude == nil) {
		return ErrHalfCoord
	}
	return nil
}

// PlacePick 地图上选中的地点
type PlacePick struct {
	Address   string   `json:"address" binding:"required,max=500"`
	PlaceName string   `json:"place_name" binding:"max=200"`
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

func (p PlacePick) Coordinate() (Coordinate, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: *p.Latitude, Longitude: *p.Longitude}, true
}

// UpsertNoteRequest 保存笔记请求；带 place 时按选点规则覆盖位置
type UpsertNoteRequest struct {
	Name        string     `json:"name" binding:"required,max=200"`
	Restaurant  string     `json:"restaurant" binding:"max=200"`
	Location    string     `json:"location" binding:"max=500"`
	Latitude    *float64   `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64   `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Rating      int        `json:"rating" binding:"omitempty,min=1,max=5"`
	Description string     `json:"description" binding:"max=5000"`
	Place       *PlacePick `json:"place" binding:"omitempty"`
}

// Draft 转成表单，再走统一的校验
func (r UpsertNoteRequest) Draft() (NoteDraft, error) {
	d := NoteDraft{
		Name:        r.Name,
		Restaurant:  r.Restaurant,
		Location:    r.Location,
		Rating:      r.Rating,
		Description: r.Description,
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return d, ErrHalfCoord
	}
	if r.Latitude != nil {
		d.Coordinate = &Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
	}
	if r.Place != nil {
		c, ok := r.Place.Coordinate()
		if !ok {
			return d, ErrHalfCoord
		}
		d.ApplyPlacePick(r.Place.Address, r.Place.PlaceName, c)
	}
	return d, nil
}
