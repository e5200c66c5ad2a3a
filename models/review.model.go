package models

import (
	"math"

	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	StudentID uint   `gorm:"not null;uniqueIndex:idx_review_student_course" json:"student_id"`
	CourseID  uint   `gorm:"not null;uniqueIndex:idx_review_student_course" json:"course_id"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"` // 1-5
	Comment   string `gorm:"type:text;default:''" json:"comment"`
	IsDeleted bool   `gorm:"default:false" json:"-"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

// SyncCourseRating recomputes a course's average rating and review count
// after a review is written or removed.
func SyncCourseRating(db *gorm.DB, courseID uint) error {
	var agg struct {
		AvgRating  float64
		NumReviews int
	}
	if err := db.Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS num_reviews").
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Scan(&agg).Error; err != nil {
		return err
	}

	return db.Model(&Course{}).Where("id = ?", courseID).Updates(map[string]interface{}{
		"rating":      math.Round(agg.AvgRating*10) / 10,
		"num_reviews": agg.NumReviews,
	}).Error
}
