package reviewController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitReview lets an actively enrolled student review a published course once.
func SubmitReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedReview").(*struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, models.EnrollmentActive, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in this course to review it!", nil)
	}

	var existingReview models.Review
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existingReview).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already reviewed this course!", nil)
	}

	review := models.Review{
		StudentID: userID,
		CourseID:  course.ID,
		Rating:    reqData.Rating,
		Comment:   reqData.Comment,
	}

	if err := db.Create(&review).Error; err != nil {
		log.Printf("Error creating review: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	if err := models.SyncCourseRating(db, course.ID); err != nil {
		log.Printf("Error syncing course rating: %v", err)
	}

	db.Where("id = ?", course.ID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully!", fiber.Map{
		"review": review,
		"course": fiber.Map{
			"rating":      course.Rating,
			"num_reviews": course.NumReviews,
		},
	})
}

// GetAllReviews lists a course's reviews; when authenticated, the caller's
// own review is returned separately as well.
func GetAllReviews(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var ownReview *models.Review
	if userID, ok := c.Locals("userId").(uint); ok {
		var review models.Review
		if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
			First(&review).Error; err == nil {
			ownReview = &review
		}
	}

	var reviews []models.Review
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Preload("Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, avatar")
		}).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	message := "Reviews fetched successfully!"
	if len(reviews) == 0 {
		message = "Course has no reviews."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"ownReview": ownReview,
		"reviews":   reviews,
	})
}

// DeleteReview removes the caller's own review and refreshes the course rating.
func DeleteReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var review models.Review
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if err := db.Model(&review).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	if err := models.SyncCourseRating(db, courseID); err != nil {
		log.Printf("Error syncing course rating: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}
