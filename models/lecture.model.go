package models

import "gorm.io/gorm"

// Lecture is a single video within a course.
type Lecture struct {
	gorm.Model
	CourseID    uint   `gorm:"not null;index" json:"course_id"`
	TeacherID   uint   `gorm:"not null;index" json:"teacher_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;default:''" json:"description"`
	VideoURL    string `gorm:"not null" json:"video_url,omitempty"`
	PublicID    string `gorm:"not null" json:"public_id,omitempty"`
	Duration    int64  `gorm:"not null" json:"duration"` // seconds
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}

// SyncCourseLectureTotals recomputes TotalLectures and TotalDuration for a
// course after a lecture is added, updated or removed.
func SyncCourseLectureTotals(db *gorm.DB, courseID uint) error {
	var agg struct {
		TotalLectures int
		TotalDuration int64
	}
	if err := db.Model(&Lecture{}).
		Select("COUNT(*) AS total_lectures, COALESCE(SUM(duration), 0) AS total_duration").
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Scan(&agg).Error; err != nil {
		return err
	}

	return db.Model(&Course{}).Where("id = ?", courseID).Updates(map[string]interface{}{
		"total_lectures": agg.TotalLectures,
		"total_duration": agg.TotalDuration,
	}).Error
}
