package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	Slug        string `gorm:"unique;not null" json:"slug"`
	Thumbnail   string `gorm:"default:''" json:"thumbnail"`
	Description string `gorm:"default:''" json:"description"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}
