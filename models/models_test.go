package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestBeforeCreateDefaultsRole(t *testing.T) {
	db := setupDB(t)

	student := User{Name: "Asha", Email: "asha@example.com", Password: "x"}
	require.NoError(t, db.Create(&student).Error)
	assert.Equal(t, RoleStudent, student.Role)
	assert.True(t, student.IsApproved)

	teacher := User{Name: "Ravi", Email: "ravi@example.com", Password: "x", Role: RoleTeacher}
	require.NoError(t, db.Create(&teacher).Error)
	assert.False(t, teacher.IsApproved, "teachers need admin approval")
}

func TestCourseIsFree(t *testing.T) {
	assert.True(t, (&Course{Price: 0}).IsFree())
	assert.False(t, (&Course{Price: 499}).IsFree())
}

func TestSyncCourseLectureTotals(t *testing.T) {
	db := setupDB(t)

	course := Course{TeacherID: 1, CategoryID: 1, Title: "Go Basics", Level: LevelBeginner}
	require.NoError(t, db.Create(&course).Error)

	lectures := []Lecture{
		{CourseID: course.ID, TeacherID: 1, Title: "Intro", VideoURL: "v1", PublicID: "p1", Duration: 120},
		{CourseID: course.ID, TeacherID: 1, Title: "Setup", VideoURL: "v2", PublicID: "p2", Duration: 300},
		{CourseID: course.ID, TeacherID: 1, Title: "Old", VideoURL: "v3", PublicID: "p3", Duration: 600, IsDeleted: true},
	}
	require.NoError(t, db.Create(&lectures).Error)

	require.NoError(t, SyncCourseLectureTotals(db, course.ID))

	require.NoError(t, db.First(&course, course.ID).Error)
	assert.Equal(t, 2, course.TotalLectures)
	assert.Equal(t, int64(420), course.TotalDuration)
}

func TestSyncCourseRating(t *testing.T) {
	db := setupDB(t)

	course := Course{TeacherID: 1, CategoryID: 1, Title: "Go Basics", Level: LevelBeginner}
	require.NoError(t, db.Create(&course).Error)

	reviews := []Review{
		{StudentID: 2, CourseID: course.ID, Rating: 5},
		{StudentID: 3, CourseID: course.ID, Rating: 4},
		{StudentID: 4, CourseID: course.ID, Rating: 4},
	}
	require.NoError(t, db.Create(&reviews).Error)

	require.NoError(t, SyncCourseRating(db, course.ID))

	require.NoError(t, db.First(&course, course.ID).Error)
	assert.Equal(t, 4.3, course.Rating) // 13/3 rounded to one decimal
	assert.Equal(t, 3, course.NumReviews)
}

func TestSyncCourseRatingNoReviews(t *testing.T) {
	db := setupDB(t)

	course := Course{TeacherID: 1, CategoryID: 1, Title: "Go Basics", Level: LevelBeginner, Rating: 4.5, NumReviews: 9}
	require.NoError(t, db.Create(&course).Error)

	require.NoError(t, SyncCourseRating(db, course.ID))

	require.NoError(t, db.First(&course, course.ID).Error)
	assert.Zero(t, course.Rating)
	assert.Zero(t, course.NumReviews)
}

func TestEnrollmentUniquePerStudentCourse(t *testing.T) {
	db := setupDB(t)

	first := Enrollment{StudentID: 2, CourseID: 1, TeacherID: 1, Status: EnrollmentActive}
	require.NoError(t, db.Create(&first).Error)

	dup := Enrollment{StudentID: 2, CourseID: 1, TeacherID: 1, Status: EnrollmentActive}
	err := db.Create(&dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
