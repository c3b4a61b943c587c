package educatorController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	educatorValidator "lms/validators/educator"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UpdateRoleToEducator upgrades the caller to educator and mirrors the
// role into the identity provider's public metadata.
func UpdateRoleToEducator(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "User not found", nil)
	}

	user.Role = models.RoleEducator
	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to update role!", nil)
	}

	utils.SyncUserRoleToClerk(userID, models.RoleEducator)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "You can publish a course now", nil)
}

// AddCourse creates a course from the validated multipart payload. Chapter
// and lecture order is assigned as previous order + 1 when the client does
// not provide one.
func AddCourse(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	payload := c.Locals("validatedCourse").(*educatorValidator.CoursePayload)
	thumbnail := c.Locals("thumbnail").(*multipart.FileHeader)
	db := database.Database.Db

	newCourse := courseModels.Course{
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
		Discount:    payload.Discount,
		IsPublished: payload.IsPublished,
		EducatorID:  educatorID,
	}

	lastChapterOrder := 0
	for _, ch := range payload.Chapters {
		chapterOrder := ch.Order
		if chapterOrder == 0 {
			chapterOrder = lastChapterOrder + 1
		}
		lastChapterOrder = chapterOrder

		chapter := courseModels.Chapter{
			Title:      ch.Title,
			OrderIndex: chapterOrder,
		}

		lastLectureOrder := 0
		for _, lec := range ch.Lectures {
			lectureOrder := lec.Order
			if lectureOrder == 0 {
				lectureOrder = lastLectureOrder + 1
			}
			lastLectureOrder = lectureOrder

			chapter.Lectures = append(chapter.Lectures, courseModels.Lecture{
				Title:         lec.Title,
				URL:           lec.URL,
				Duration:      lec.Duration,
				IsPreviewFree: lec.IsPreviewFree,
				OrderIndex:    lectureOrder,
			})
		}

		newCourse.Chapters = append(newCourse.Chapters, chapter)
	}

	if err := db.Create(&newCourse).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to create course!", nil)
	}

	thumbnailURL, err := utils.UploadThumbnail(thumbnail)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to upload thumbnail!", nil)
	}
	if err := db.Model(&newCourse).Update("thumbnail", thumbnailURL).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to save thumbnail!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course Added", fiber.Map{
		"courseId": newCourse.ID,
	})
}

// Dashboard aggregates the educator's totals: course count, earnings over
// completed purchases, and the 10 most recent enrollments.
func Dashboard(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("educator_id = ?", educatorID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch courses!", nil)
	}

	courseIDs := make([]uint, len(courses))
	titles := make(map[uint]string, len(courses))
	for i, crs := range courses {
		courseIDs[i] = crs.ID
		titles[crs.ID] = crs.Title
	}

	totalEarnings := 0.0
	type EnrolledStudent struct {
		CourseTitle  string    `json:"courseTitle"`
		Student      fiber.Map `json:"student"`
		PurchaseDate time.Time `json:"purchaseDate"`
	}
	enrolledStudentsData := []EnrolledStudent{}

	if len(courseIDs) > 0 {
		var purchases []models.Purchase
		if err := db.Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseCompleted).
			Find(&purchases).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch purchases!", nil)
		}
		for _, p := range purchases {
			totalEarnings += p.Amount
		}

		var latest []models.Purchase
		if err := db.Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseCompleted).
			Order("created_at desc").Limit(10).Find(&latest).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch enrollments!", nil)
		}

		for _, p := range latest {
			var student models.User
			db.Where("id = ?", p.UserID).First(&student)
			enrolledStudentsData = append(enrolledStudentsData, EnrolledStudent{
				CourseTitle: titles[p.CourseID],
				Student: fiber.Map{
					"_id":      student.ID,
					"name":     student.Name,
					"imageUrl": student.ImageUrl,
				},
				PurchaseDate: p.CreatedAt,
			})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{
		"dashboardData": fiber.Map{
			"totalCourses":         len(courses),
			"totalEarnings":        totalEarnings,
			"enrolledStudentsData": enrolledStudentsData,
		},
	})
}

// GetEducatorCourses lists the educator's courses with per-course
// enrollment count and earnings. The purchase join runs in process, which
// is fine at this scale.
func GetEducatorCourses(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("educator_id = ?", educatorID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch courses!", nil)
	}

	courseIDs := make([]uint, len(courses))
	for i, crs := range courses {
		courseIDs[i] = crs.ID
	}

	var purchases []models.Purchase
	if len(courseIDs) > 0 {
		db.Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseCompleted).Find(&purchases)
	}

	type CourseWithStats struct {
		courseModels.Course
		PurchaseStats fiber.Map `json:"purchaseStats"`
	}

	result := make([]CourseWithStats, len(courses))
	for i, crs := range courses {
		totalEarnings := 0.0
		enrollmentCount := 0
		for _, p := range purchases {
			if p.CourseID == crs.ID {
				totalEarnings += p.Amount
				enrollmentCount++
			}
		}
		result[i] = CourseWithStats{
			Course: crs,
			PurchaseStats: fiber.Map{
				"totalEarnings":   totalEarnings,
				"enrollmentCount": enrollmentCount,
			},
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{
		"courses": result,
	})
}

// GetEnrolledStudents lists every completed purchase for the educator's
// courses with the student profile and course title joined in.
func GetEnrolledStudents(c *fiber.Ctx) error {
	educatorID := c.Locals("userId").(string)
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("educator_id = ?", educatorID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch courses!", nil)
	}

	courseIDs := make([]uint, len(courses))
	titles := make(map[uint]string, len(courses))
	for i, crs := range courses {
		courseIDs[i] = crs.ID
		titles[crs.ID] = crs.Title
	}

	type EnrolledStudent struct {
		CourseTitle  string    `json:"courseTitle"`
		Student      fiber.Map `json:"student"`
		PurchaseDate time.Time `json:"purchaseDate"`
	}
	enrolledStudents := []EnrolledStudent{}

	if len(courseIDs) > 0 {
		var purchases []models.Purchase
		if err := db.Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseCompleted).
			Order("created_at desc").Find(&purchases).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch purchases!", nil)
		}

		for _, p := range purchases {
			var student models.User
			db.Where("id = ?", p.UserID).First(&student)
			enrolledStudents = append(enrolledStudents, EnrolledStudent{
				CourseTitle: titles[p.CourseID],
				Student: fiber.Map{
					"_id":      student.ID,
					"name":     student.Name,
					"imageUrl": student.ImageUrl,
				},
				PurchaseDate: p.CreatedAt,
			})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{
		"enrolledStudents": enrolledStudents,
	})
}
