package userController

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	userValidator "lms/validators/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func countCourseLectures(db *gorm.DB, courseID uint) int64 {
	var total int64
	db.Model(&courseModels.Lecture{}).
		Joins("JOIN chapters ON chapters.id = lectures.chapter_id").
		Where("chapters.course_id = ?", courseID).
		Count(&total)
	return total
}

// UpdateCourseProgress marks one lecture complete. Marking a lecture that
// is already in the completed set is a no-op returning success.
func UpdateCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	reqData := c.Locals("validatedProgress").(*userValidator.ProgressUpdateRequest)
	db := database.Database.Db

	// The lecture must belong to the course's chapter tree.
	var lecture courseModels.Lecture
	if err := db.Where("id = ?", reqData.LectureID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Lecture not found in this course", nil)
	}
	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND course_id = ?", lecture.ChapterID, reqData.CourseID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Lecture not found in this course", nil)
	}

	var progress courseModels.CourseProgress
	err := db.Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = courseModels.CourseProgress{
			UserID:   userID,
			CourseID: reqData.CourseID,
		}
		progress.SetCompletedLectures([]uint{reqData.LectureID})
		progress.Completed = countCourseLectures(db, reqData.CourseID) <= 1
		if err := db.Create(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to update progress!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch progress!", nil)
	}

	if progress.HasLecture(reqData.LectureID) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture already completed", nil)
	}

	lectures, _ := progress.CompletedLectures()
	lectures = append(lectures, reqData.LectureID)
	progress.SetCompletedLectures(lectures)
	progress.Completed = int64(len(lectures)) >= countCourseLectures(db, reqData.CourseID)

	if err := db.Save(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated", nil)
}

// GetCourseProgress returns the caller's progress record for a course,
// creating an empty one on first access. A malformed completed-set is
// reset to empty and persisted.
func GetCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var progress courseModels.CourseProgress
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = courseModels.CourseProgress{
			UserID:   userID,
			CourseID: courseID,
		}
		progress.SetCompletedLectures([]uint{})
		if err := db.Create(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to create progress!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{"progressData": progress})
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch progress!", nil)
	}

	if _, ok := progress.CompletedLectures(); !ok {
		progress.SetCompletedLectures([]uint{})
		db.Save(&progress)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{"progressData": progress})
}

// AddRating upserts the caller's rating of a course they are enrolled in.
// A second submission overwrites the stored value in place.
func AddRating(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	reqData := c.Locals("validatedRating").(*userValidator.RatingRequest)
	db := database.Database.Db

	var courseData courseModels.Course
	if err := db.Where("id = ?", reqData.CourseID).First(&courseData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Course not found", nil)
	}

	var user models.User
	userErr := db.Where("id = ?", userID).First(&user).Error

	var enrollment courseModels.Enrollment
	enrollErr := db.Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).First(&enrollment).Error

	if userErr != nil || enrollErr != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "You are not enrolled in this course", nil)
	}

	rating := courseModels.CourseRating{
		CourseID: reqData.CourseID,
		UserID:   userID,
		Rating:   reqData.Rating,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&rating).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to add rating!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rating added successfully", nil)
}
