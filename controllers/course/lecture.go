package courseController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetLectureUploadSignature authorizes the course owner to upload a lecture
// video directly to the media host.
func GetLectureUploadSignature(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", courseID, userID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not allowed to upload lectures for this course!", nil)
	}

	cfg := config.AppConfig
	payload := utils.UploadSignature("lectures", cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload signature generated.", payload)
}

// UploadLecture registers an uploaded video as a lecture of an owned course.
func UploadLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedLecture").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		VideoURL    string `json:"video_url"`
		PublicID    string `json:"public_id"`
		Duration    int64  `json:"duration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", courseID, userID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not authorised to upload lectures here!", nil)
	}

	lecture := models.Lecture{
		CourseID:    course.ID,
		TeacherID:   userID,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		PublicID:    reqData.PublicID,
		Duration:    reqData.Duration,
	}

	if err := database.Database.Db.Create(&lecture).Error; err != nil {
		log.Printf("Error creating lecture: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload lecture!", nil)
	}

	if err := models.SyncCourseLectureTotals(database.Database.Db, course.ID); err != nil {
		log.Printf("Error syncing course totals: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture uploaded successfully!", lecture)
}

// UpdateLecture updates only the provided fields of an owned lecture.
func UpdateLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)

	reqData := new(struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		VideoURL    *string `json:"video_url"`
		PublicID    *string `json:"public_id"`
		Duration    *int64  `json:"duration"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var lecture models.Lecture
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", lectureID, userID, false).
		First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found or you don't have permission!", nil)
	}

	if reqData.Title != nil {
		lecture.Title = *reqData.Title
	}
	if reqData.Description != nil {
		lecture.Description = *reqData.Description
	}
	if reqData.VideoURL != nil {
		lecture.VideoURL = *reqData.VideoURL
	}
	if reqData.PublicID != nil {
		lecture.PublicID = *reqData.PublicID
	}
	if reqData.Duration != nil {
		lecture.Duration = *reqData.Duration
	}

	if err := database.Database.Db.Save(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	if err := models.SyncCourseLectureTotals(database.Database.Db, lecture.CourseID); err != nil {
		log.Printf("Error syncing course totals: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture updated successfully!", lecture)
}

// DeleteLecture soft-deletes an owned lecture and refreshes course totals.
func DeleteLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)

	var lecture models.Lecture
	if err := database.Database.Db.Where("id = ? AND teacher_id = ? AND is_deleted = ?", lectureID, userID, false).
		First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	if err := database.Database.Db.Model(&lecture).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lecture!", nil)
	}

	if err := models.SyncCourseLectureTotals(database.Database.Db, lecture.CourseID); err != nil {
		log.Printf("Error syncing course totals: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted successfully!", nil)
}
