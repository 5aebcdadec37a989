package models

import "time"

type Photo struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	ObjectKey string    `gorm:"column:object_key;type:varchar(255);not null" json:"object_key"`
	Size      int64     `gorm:"column:size;not null;default:0" json:"size"`
	Width     int       `gorm:"column:width;not null;default:0" json:"width"`
	Height    int       `gorm:"column:height;not null;default:0" json:"height"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at" json:"created_at"`
}

// TableName 显式指定表名
func (Photo) TableName() string {
	return "photos"
}
