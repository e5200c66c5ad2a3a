package main

import (
	"lms/config"
	"lms/database"
	adminRoutes "lms/routers/adminRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	dashboardRoutes "lms/routers/dashboardRoutes"
	enrollmentRoutes "lms/routers/enrollmentRoutes"
	reviewRoutes "lms/routers/reviewRoutes"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	dashboardRoutes.SetupDashboardRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	utils.InitializeOTPScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
