package courseRoutes

import (
	controllers "lms/controllers/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/course")

	courseGroup.Get("/all", controllers.GetAllCourses)
	courseGroup.Get("/:id", validators.GetCourseDetail(), controllers.GetCourseByID)
}
