package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetPendingTeachers lists teacher accounts awaiting approval.
func GetPendingTeachers(c *fiber.Ctx) error {
	var teachers []models.User
	if err := database.Database.Db.
		Where("role = ? AND is_approved = ? AND is_deleted = ?", models.RoleTeacher, false, false).
		Order("created_at asc").Find(&teachers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending teachers!", nil)
	}

	for i := range teachers {
		teachers[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending teachers fetched successfully!", fiber.Map{
		"teachers": teachers,
	})
}

// ApproveTeacher marks a pending teacher account as approved.
func ApproveTeacher(c *fiber.Ctx) error {
	teacherID := c.Locals("teacherID").(uint)

	db := database.Database.Db

	var teacher models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", teacherID, models.RoleTeacher, false).
		First(&teacher).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Teacher not found!", nil)
	}

	if teacher.IsApproved {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Teacher is already approved!", nil)
	}

	teacher.IsApproved = true
	if err := db.Save(&teacher).Error; err != nil {
		log.Printf("Error approving teacher %d: %v", teacherID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve teacher!", nil)
	}

	teacher.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Teacher approved successfully!", teacher)
}

// CreateCategory adds a new course category with a slug derived from its name.
func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name        string `json:"name"`
		Thumbnail   string `json:"thumbnail"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	slug := utils.Slugify(reqData.Name)

	var existing models.Category
	if err := db.Where("(name = ? OR slug = ?) AND is_deleted = ?", reqData.Name, slug, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := models.Category{
		Name:        reqData.Name,
		Slug:        slug,
		Thumbnail:   reqData.Thumbnail,
		Description: reqData.Description,
	}

	if err := db.Create(&category).Error; err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// GetAllCategories lists every category, including empty ones.
func GetAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{
		"categories": categories,
	})
}
