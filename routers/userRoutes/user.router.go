package userRoutes

import (
	controllers "lms/controllers/user"
	"lms/middleware"
	validators "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up enrollment, progress and rating routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/user")

	userGroup.Get("/data", middleware.JWTMiddleware, controllers.GetUserData)
	userGroup.Get("/enrolled-courses", middleware.JWTMiddleware, controllers.GetEnrolledCourses)

	userGroup.Post("/purchase", middleware.JWTMiddleware, validators.Purchase(), controllers.PurchaseCourse)

	userGroup.Post("/update-course-progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateCourseProgress)
	userGroup.Get("/get-course-progress/:courseId", middleware.JWTMiddleware, validators.GetProgress(), controllers.GetCourseProgress)

	userGroup.Post("/add-rating", middleware.JWTMiddleware, validators.AddRating(), controllers.AddRating)
}
