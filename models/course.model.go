package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course represents a learning course authored by a teacher.
// Price is in whole currency units; 0 marks a free course.
type Course struct {
	gorm.Model
	TeacherID         uint           `gorm:"not null;index" json:"teacher_id"`
	CategoryID        uint           `gorm:"index" json:"category_id"`
	Title             string         `gorm:"not null;index" json:"title"`
	Description       string         `gorm:"type:text;default:''" json:"description"`
	Price             uint           `gorm:"not null;default:0" json:"price"`
	Thumbnail         string         `gorm:"default:''" json:"thumbnail"`
	ThumbnailPublicID string         `gorm:"default:''" json:"thumbnail_public_id"`
	Tags              datatypes.JSON `json:"tags"`
	Level             string         `gorm:"not null;default:'beginner'" json:"level"` // beginner, intermediate, advanced
	Rating            float64        `gorm:"default:0" json:"rating"`
	NumReviews        int            `gorm:"default:0" json:"num_reviews"`
	TotalLectures     int            `gorm:"default:0" json:"total_lectures"`
	TotalDuration     int64          `gorm:"default:0" json:"total_duration"` // seconds
	IsPublished       bool           `gorm:"default:false;index" json:"is_published"`
	IsDeleted         bool           `gorm:"default:false" json:"-"`

	Teacher  *User     `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// IsFree reports whether enrolling requires no payment.
func (c *Course) IsFree() bool {
	return c.Price == 0
}
