package authController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Register creates (or refreshes) an unverified user and emails an OTP.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Avatar   string `json:"avatar"`
		PublicID string `json:"public_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	var user models.User
	existing := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error == nil
	if existing && user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	if existing {
		// Unverified leftover from an earlier attempt; overwrite it.
		user.Name = reqData.Name
		user.Password = string(hashedPassword)
		user.Role = reqData.Role
		user.Avatar = reqData.Avatar
		user.AvatarPublicID = reqData.PublicID
		user.IsApproved = reqData.Role != models.RoleTeacher
		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error updating user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
		}
	} else {
		user = models.User{
			Name:           reqData.Name,
			Email:          reqData.Email,
			Password:       string(hashedPassword),
			Role:           reqData.Role,
			Avatar:         reqData.Avatar,
			AvatarPublicID: reqData.PublicID,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error saving user to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
		}
	}

	if err := issueOTP(&user, "Email Verification OTP"); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully. Check your email for the OTP.", user)
}

// issueOTP generates a code, stores its bcrypt hash and emails the plain code.
func issueOTP(user *models.User, description string) error {
	otp := utils.GenerateOTP()

	hashedOTP, err := bcrypt.GenerateFromPassword([]byte(otp), config.AppConfig.SaltRound)
	if err != nil {
		return err
	}

	otpRecord := models.OTP{
		UserID:      user.ID,
		Email:       user.Email,
		Code:        string(hashedOTP),
		ExpiresAt:   time.Now().Add(5 * time.Minute),
		Description: description,
	}

	if err := utils.SendOTPEmail(otp, user.Email); err != nil {
		return err
	}

	return database.Database.Db.Create(&otpRecord).Error
}

// VerifyOTP marks the user's email verified and issues a token.
func VerifyOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}
	if reqData.Email == "" || reqData.Code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email and code are required!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var otpRecord models.OTP
	if err := db.Where("email = ? AND is_used = ? AND is_deleted = ?", reqData.Email, false, false).
		Order("created_at desc").First(&otpRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP or OTP expired!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(otpRecord.Code), []byte(reqData.Code)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OTP is incorrect!", nil)
	}

	if otpRecord.ExpiresAt.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OTP has expired!", nil)
	}

	otpRecord.IsUsed = true
	if err := db.Save(&otpRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update OTP status!", nil)
	}

	user.IsEmailVerified = true
	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user verification status!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// ResendOTP re-issues a verification code for an unverified user.
func ResendOTP(c *fiber.Ctx) error {
	reqData := new(struct {
		Email string `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already verified!", nil)
	}

	if err := issueOTP(&user, "Email Verification OTP"); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsEmailVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not verified!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	loginTracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: ip,
		Device:    c.Get("User-Agent"),
		Timestamp: time.Now(),
	}
	if err := database.Database.Db.Create(&loginTracking).Error; err != nil {
		log.Printf("Error saving login tracking details: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Me returns the authenticated user's profile.
func Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", user)
}

// UpdateProfile updates name, email and avatar for the authenticated user.
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
		PublicID string `json:"public_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Email != "" {
		user.Email = reqData.Email
	}
	if reqData.Avatar != "" {
		user.Avatar = reqData.Avatar
		user.AvatarPublicID = reqData.PublicID
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error updating profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", user)
}

// GetAvatarUploadSignature returns a signed payload for direct avatar upload.
func GetAvatarUploadSignature(c *fiber.Ctx) error {
	cfg := config.AppConfig
	payload := utils.UploadSignature("user/avatar", cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload signature generated.", payload)
}
