package main

import (
	"lms/config"
	webhookController "lms/controllers/webhook"
	"lms/database"
	courseRoutes "lms/routers/courseRoutes"
	educatorRoutes "lms/routers/educatorRoutes"
	userRoutes "lms/routers/userRoutes"
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
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Locally stored thumbnails are served from here
	app.Static("/uploads", config.AppConfig.UploadDir)

	// Identity webhook reads the raw body for signature verification, so
	// it is registered directly rather than through a router group.
	app.Post("/clerk", webhookController.ClerkWebhook)

	courseRoutes.SetupCourseRoutes(app)
	educatorRoutes.SetupEducatorRoutes(app)
	userRoutes.SetupUserRoutes(app)

	app.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "pong"})
	})

	utils.InitializePurchaseScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
