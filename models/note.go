package models

import (
	"time"
)

type Note struct {
	ID          string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	PhotoID     string    `gorm:"column:photo_id;type:varchar(64);not null;uniqueIndex:uk_photo_id" json:"photo_id"`
	Name        string    `gorm:"column:name;type:varchar(200);not null;default:''" json:"name"`
	Restaurant  string    `gorm:"column:restaurant;type:varchar(200);not null;default:''" json:"restaurant"`
	Location    string    `gorm:"column:location;type:varchar(500);not null;default:''" json:"location"`
	Latitude    *float64  `gorm:"column:latitude" json:"latitude"`
	Longitude   *float64  `gorm:"column:longitude" json:"longitude"`
	Rating      int8      `gorm:"column:rating;not null;default:3" json:"rating"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (n Note) TableName() string {
	return "notes"
}
