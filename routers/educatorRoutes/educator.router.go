package educatorRoutes

import (
	controllers "lms/controllers/educator"
	"lms/middleware"
	validators "lms/validators/educator"

	"github.com/gofiber/fiber/v2"
)

// SetupEducatorRoutes sets up course authoring and aggregation routes
func SetupEducatorRoutes(app *fiber.App) {
	educatorGroup := app.Group("/api/educator")

	educatorGroup.Post("/update-role", middleware.JWTMiddleware, controllers.UpdateRoleToEducator)

	educatorGroup.Post("/add-course", middleware.JWTMiddleware, middleware.EducatorOnly, validators.AddCourse(), controllers.AddCourse)
	educatorGroup.Get("/courses", middleware.JWTMiddleware, middleware.EducatorOnly, controllers.GetEducatorCourses)
	educatorGroup.Get("/dashboard", middleware.JWTMiddleware, middleware.EducatorOnly, controllers.Dashboard)
	educatorGroup.Get("/enrolled-students", middleware.JWTMiddleware, middleware.EducatorOnly, controllers.GetEnrolledStudents)
}
