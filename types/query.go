package types

import "time"

// 分组哨兵
const (
	NoLocation     = "No Location"
	NoRestaurant   = "No Restaurant"
	UnratedLabel   = "Unrated"
	UnknownCountry = "Unknown"
)

// Criteria 搜索与日期过滤条件
type Criteria struct {
	SearchText string
	Start      *time.Time
	End        *time.Time
	// Loc 按哪个时区计算自然日，nil 时使用 time.Local
	Loc *time.Location
}

// BrowseQuery 浏览接口的公共查询参数
type BrowseQuery struct {
	Q     string `form:"q"`
	Start string `form:"start"`
	End   string `form:"end"`
	TZ    string `form:"tz"`
}

type RestaurantGroup struct {
	Restaurant string      `json:"restaurant"`
	Photos     []PhotoItem `json:"photos"`
}

type LocationGroup struct {
	Location    string            `json:"location"`
	Count       int               `json:"count"`
	Restaurants []RestaurantGroup `json:"restaurants"`
}

type RatingGroup struct {
	Rating int         `json:"rating"`
	Label  string      `json:"label"`
	Photos []PhotoItem `json:"photos"`
}

// CountryAnnotation 地图上一个国家的图钉
type CountryAnnotation struct {
	Country    string      `json:"country"`
	Coordinate Coordinate  `json:"coordinate"`
	Count      int         `json:"count"`
	Photos     []PhotoItem `json:"photos"`
}

// MapOptions 国家分组选项
type MapOptions struct {
	OmitUnplaced bool
}
