package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EducatorProfile is the public slice of an educator's user record that is
// safe to attach to catalog responses.
type EducatorProfile struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	ImageUrl string `json:"imageUrl"`
}

func educatorProfile(db *gorm.DB, educatorID string, cache map[string]EducatorProfile) EducatorProfile {
	if profile, ok := cache[educatorID]; ok {
		return profile
	}
	var user models.User
	db.Where("id = ?", educatorID).First(&user)
	profile := EducatorProfile{ID: user.ID, Name: user.Name, ImageUrl: user.ImageUrl}
	cache[educatorID] = profile
	return profile
}

// GetAllCourses returns the public catalog: published courses only, with
// the chapter tree and enrollment data stripped and a precomputed lecture
// count attached. Ratings stay in so clients can show averages.
func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_published = ?", true).
		Preload("Chapters.Lectures").
		Preload("Ratings").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch courses!", nil)
	}

	// CatalogCourse drops courseContent by shadowing the embedded field.
	type CatalogCourse struct {
		courseModels.Course
		Chapters      []courseModels.Chapter `json:"courseContent,omitempty"`
		TotalLectures int                    `json:"totalLectures"`
		Educator      EducatorProfile        `json:"educator"`
	}

	profiles := make(map[string]EducatorProfile)
	result := make([]CatalogCourse, len(courses))
	for i, crs := range courses {
		result[i] = CatalogCourse{
			Course:        crs,
			TotalLectures: crs.TotalLectures(),
			Educator:      educatorProfile(db, crs.EducatorID, profiles),
		}
		result[i].Course.Chapters = nil
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{
		"courses": result,
	})
}

// GetCourseByID returns one course with its full chapter tree. Lecture
// URLs are blanked for non-preview lectures in the response only; stored
// data is never touched.
func GetCourseByID(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var courseData courseModels.Course
	if err := db.Where("id = ?", courseID).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapters.order_index asc")
		}).
		Preload("Chapters.Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Order("lectures.order_index asc")
		}).
		Preload("Ratings").
		First(&courseData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Course not found", nil)
	}

	for i := range courseData.Chapters {
		for j := range courseData.Chapters[i].Lectures {
			if !courseData.Chapters[i].Lectures[j].IsPreviewFree {
				courseData.Chapters[i].Lectures[j].URL = ""
			}
		}
	}

	type CourseDetail struct {
		courseModels.Course
		Educator EducatorProfile `json:"educator"`
	}

	profiles := make(map[string]EducatorProfile)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{
		"courseData": CourseDetail{
			Course:   courseData,
			Educator: educatorProfile(db, courseData.EducatorID, profiles),
		},
	})
}
