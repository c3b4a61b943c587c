package userController

import (
	"fmt"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	userValidator "lms/validators/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetUserData returns the caller's profile with their enrolled course ids.
func GetUserData(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "User not found", nil)
	}

	var enrollments []courseModels.Enrollment
	db.Where("user_id = ?", userID).Find(&enrollments)

	enrolledCourses := make([]uint, len(enrollments))
	for i, e := range enrollments {
		enrolledCourses[i] = e.CourseID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{
		"user":            user,
		"enrolledCourses": enrolledCourses,
	})
}

// GetEnrolledCourses returns the caller's enrolled courses with their full
// content. Enrolled users get lecture URLs; no redaction on this path.
func GetEnrolledCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch enrollments!", nil)
	}

	courseIDs := make([]uint, len(enrollments))
	for i, e := range enrollments {
		courseIDs[i] = e.CourseID
	}

	var courses []courseModels.Course
	if len(courseIDs) > 0 {
		if err := db.Where("id IN ?", courseIDs).
			Preload("Chapters", func(db *gorm.DB) *gorm.DB {
				return db.Order("chapters.order_index asc")
			}).
			Preload("Chapters.Lectures", func(db *gorm.DB) *gorm.DB {
				return db.Order("lectures.order_index asc")
			}).
			Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to fetch courses!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", fiber.Map{
		"enrolledCourses": courses,
	})
}

// PurchaseCourse runs the simulated checkout: create a pending purchase at
// the course's effective price, charge the simulated gateway, and enroll
// the student only after the charge is confirmed. A failed charge leaves
// no purchase record behind.
func PurchaseCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	reqData := c.Locals("validatedPurchase").(*userValidator.PurchaseRequest)
	origin := c.Get("Origin")
	db := database.Database.Db

	var user models.User
	userErr := db.Where("id = ?", userID).First(&user).Error

	var courseData courseModels.Course
	courseErr := db.Where("id = ?", reqData.CourseID).First(&courseData).Error

	if userErr != nil || courseErr != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Data not found", nil)
	}

	var existing courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseData.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Already enrolled in this course", nil)
	}

	// Amount is fixed at purchase time and never recomputed.
	purchase := models.Purchase{
		CourseID: courseData.ID,
		UserID:   userID,
		Amount:   courseData.EffectivePrice(),
		Status:   models.PurchasePending,
	}
	if err := db.Create(&purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to create purchase!", nil)
	}

	paymentResult := utils.ProcessPayment(fmt.Sprint(purchase.ID), purchase.Amount)

	if !paymentResult.Success {
		// No failed record is retained for abandoned simulated charges.
		db.Unscoped().Delete(&purchase)
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Payment failed", fiber.Map{
			"paymentDetails": paymentResult,
			"redirectUrl":    origin + "/",
		})
	}

	// Enrollment happens strictly after payment confirmation.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Purchase{}).Where("id = ?", purchase.ID).
			Update("status", models.PurchaseCompleted).Error; err != nil {
			return err
		}
		return tx.Create(&courseModels.Enrollment{UserID: userID, CourseID: courseData.ID}).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Failed to complete enrollment!", nil)
	}

	utils.SendPurchaseConfirmation(user.Name, user.Email, courseData.Title, purchase.Amount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course purchased successfully", fiber.Map{
		"paymentDetails": paymentResult,
		"redirectUrl":    origin + "/loading/my-enrollments",
	})
}
