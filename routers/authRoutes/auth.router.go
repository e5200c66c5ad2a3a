package authRoutes

import (
	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Patch("/verify/otp", authControllers.VerifyOTP)
	authGroup.Post("/resend/otp", authControllers.ResendOTP)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authControllers.Me)
	authGroup.Patch("/profile", middleware.JWTMiddleware, authControllers.UpdateProfile)
	authGroup.Get("/avatar/upload-signature", middleware.JWTMiddleware, authControllers.GetAvatarUploadSignature)
}
