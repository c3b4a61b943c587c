package userValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// PurchaseRequest is the purchase endpoint payload.
type PurchaseRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
}

// ProgressUpdateRequest marks one lecture of a course complete.
type ProgressUpdateRequest struct {
	CourseID  uint `json:"courseId" validate:"required"`
	LectureID uint `json:"lectureId" validate:"required"`
}

// RatingRequest submits a 1-5 course rating.
type RatingRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
	Rating   int  `json:"rating" validate:"required,min=1,max=5"`
}

func Purchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PurchaseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Course ID is required", nil)
		}

		c.Locals("validatedPurchase", reqData)
		return c.Next()
	}
}

func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if reqData.CourseID == 0 {
				errors["courseId"] = "Course ID is required!"
			}
			if reqData.LectureID == 0 {
				errors["lectureId"] = "Lecture ID is required!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

func GetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("courseId"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

func AddRating() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RatingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Invalid details", nil)
		}

		c.Locals("validatedRating", reqData)
		return c.Next()
	}
}
