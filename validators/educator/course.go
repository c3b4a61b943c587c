package educatorValidator

import (
	"encoding/json"
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// LecturePayload is one lecture inside the multipart courseData JSON.
type LecturePayload struct {
	Title         string  `json:"lectureTitle" validate:"required"`
	URL           string  `json:"lectureUrl" validate:"required,url"`
	Duration      float64 `json:"lectureDuration" validate:"required,gt=0"`
	IsPreviewFree bool    `json:"isPreviewFree"`
	Order         int     `json:"lectureOrder" validate:"gte=0"`
}

// ChapterPayload is one chapter inside the multipart courseData JSON.
type ChapterPayload struct {
	Title    string           `json:"chapterTitle" validate:"required"`
	Order    int              `json:"chapterOrder" validate:"gte=0"`
	Lectures []LecturePayload `json:"chapterContent" validate:"dive"`
}

// CoursePayload is the parsed courseData form field of add-course.
type CoursePayload struct {
	Title       string           `json:"courseTitle" validate:"required,min=3"`
	Description string           `json:"courseDescription"`
	Price       float64          `json:"coursePrice" validate:"gte=0"`
	Discount    float64          `json:"discount" validate:"gte=0,lte=100"`
	IsPublished bool             `json:"isPublished"`
	Chapters    []ChapterPayload `json:"courseContent" validate:"dive"`
}

// AddCourse validates the multipart add-course request: a courseData JSON
// field plus a thumbnail file.
func AddCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.FormValue("courseData")
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Course data is required!", nil)
		}

		payload := new(CoursePayload)
		if err := json.Unmarshal([]byte(raw), payload); err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Invalid course data!", nil)
		}

		if err := validate.Struct(payload); err != nil {
			errors := make(map[string]string)
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					errors[fe.Field()] = "Invalid value for " + fe.Field()
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		thumbnail, err := c.FormFile("thumbnail")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Thumbnail Not Attached", nil)
		}

		c.Locals("validatedCourse", payload)
		c.Locals("thumbnail", thumbnail)
		return c.Next()
	}
}
