package userController_test

import (
	"fmt"
	"lms/database"
	courseModels "lms/models/course"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func firstLecture(t *testing.T, crs courseModels.Course) courseModels.Lecture {
	t.Helper()
	require.NotEmpty(t, crs.Chapters)
	require.NotEmpty(t, crs.Chapters[0].Lectures)
	return crs.Chapters[0].Lectures[0]
}

func TestUpdateProgressIdempotent(t *testing.T) {
	app := setupTest(t)
	user, crs := seedUserAndCourse(t)
	lecture := firstLecture(t, crs)
	db := database.Database.Db

	payload := fiber.Map{"courseId": crs.ID, "lectureId": lecture.ID}

	_, body := doJSON(t, app, http.MethodPost, "/api/user/update-course-progress", authToken(t, user.ID), payload)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Progress updated", body["message"])

	_, body = doJSON(t, app, http.MethodPost, "/api/user/update-course-progress", authToken(t, user.ID), payload)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Lecture already completed", body["message"])

	var progress courseModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&progress).Error)
	lectures, ok := progress.CompletedLectures()
	assert.True(t, ok)
	assert.Equal(t, []uint{lecture.ID}, lectures)
}

func TestUpdateProgressSetsCompletedFlag(t *testing.T) {
	app := setupTest(t)
	user, crs := seedUserAndCourse(t)
	db := database.Database.Db

	for _, lecture := range crs.Chapters[0].Lectures {
		_, body := doJSON(t, app, http.MethodPost, "/api/user/update-course-progress", authToken(t, user.ID),
			fiber.Map{"courseId": crs.ID, "lectureId": lecture.ID})
		assert.Equal(t, true, body["success"])
	}

	var progress courseModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&progress).Error)
	assert.True(t, progress.Completed)
}

func TestUpdateProgressRejectsForeignLecture(t *testing.T) {
	app := setupTest(t)
	user, crs := seedUserAndCourse(t)
	db := database.Database.Db

	other := courseModels.Course{
		Title:      "Other Course",
		Price:      10,
		EducatorID: "educator_1",
		Chapters: []courseModels.Chapter{
			{Title: "Only", OrderIndex: 1, Lectures: []courseModels.Lecture{
				{Title: "Foreign", URL: "https://videos.test/foreign", Duration: 5, OrderIndex: 1},
			}},
		},
	}
	require.NoError(t, db.Create(&other).Error)

	_, body := doJSON(t, app, http.MethodPost, "/api/user/update-course-progress", authToken(t, user.ID),
		fiber.Map{"courseId": crs.ID, "lectureId": other.Chapters[0].Lectures[0].ID})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Lecture not found in this course", body["message"])
}

func TestGetProgressLazilyCreatesRecord(t *testing.T) {
	app := setupTest(t)
	user, crs := seedUserAndCourse(t)
	db := database.Database.Db

	status, body := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/user/get-course-progress/%d", crs.ID), authToken(t, user.ID), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	progressData := body["progressData"].(map[string]interface{})
	assert.Equal(t, false, progressData["completed"])
	assert.Empty(t, progressData["lectureCompleted"])

	var count int64
	db.Model(&courseModels.CourseProgress{}).Where("user_id = ? AND course_id = ?", user.ID, crs.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetProgressHealsMalformedSet(t *testing.T) {
	app := setupTest(t)
	user, crs := seedUserAndCourse(t)
	db := database.Database.Db

	require.NoError(t, db.Create(&courseModels.CourseProgress{
		UserID:           user.ID,
		CourseID:         crs.ID,
		LectureCompleted: datatypes.JSON([]byte(`{"bogus":true}`)),
	}).Error)

	_, body := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/user/get-course-progress/%d", crs.ID), authToken(t, user.ID), nil)
	assert.Equal(t, true, body["success"])

	progressData := body["progressData"].(map[string]interface{})
	assert.Empty(t, progressData["lectureCompleted"])

	var stored courseModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&stored).Error)
	lectures, ok := stored.CompletedLectures()
	assert.True(t, ok)
	assert.Empty(t, lectures)
}

func TestAddRatingUpsertsInPlace(t *testing.T) {
	app := setupTest(t)
	user, crs := seedUserAndCourse(t)
	db := database.Database.Db

	require.NoError(t, db.Create(&courseModels.Enrollment{UserID: user.ID, CourseID: crs.ID}).Error)

	_, body := doJSON(t, app, http.MethodPost, "/api/user/add-rating", authToken(t, user.ID),
		fiber.Map{"courseId": crs.ID, "rating": 3})
	assert.Equal(t, true, body["success"])

	_, body = doJSON(t, app, http.MethodPost, "/api/user/add-rating", authToken(t, user.ID),
		fiber.Map{"courseId": crs.ID, "rating": 5})
	assert.Equal(t, true, body["success"])

	var ratings []courseModels.CourseRating
	require.NoError(t, db.Where("course_id = ? AND user_id = ?", crs.ID, user.ID).Find(&ratings).Error)
	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].Rating)
}

func TestAddRatingValidation(t *testing.T) {
	app := setupTest(t)
	user, crs := seedUserAndCourse(t)
	db := database.Database.Db

	require.NoError(t, db.Create(&courseModels.Enrollment{UserID: user.ID, CourseID: crs.ID}).Error)

	for _, rating := range []int{0, 6} {
		status, body := doJSON(t, app, http.MethodPost, "/api/user/add-rating", authToken(t, user.ID),
			fiber.Map{"courseId": crs.ID, "rating": rating})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, body["success"])
	}

	var count int64
	db.Model(&courseModels.CourseRating{}).Where("course_id = ?", crs.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAddRatingRequiresEnrollment(t *testing.T) {
	app := setupTest(t)
	user, crs := seedUserAndCourse(t)

	_, body := doJSON(t, app, http.MethodPost, "/api/user/add-rating", authToken(t, user.ID),
		fiber.Map{"courseId": crs.ID, "rating": 4})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "You are not enrolled in this course", body["message"])
}

func TestAddRatingCourseNotFound(t *testing.T) {
	app := setupTest(t)
	user, _ := seedUserAndCourse(t)

	_, body := doJSON(t, app, http.MethodPost, "/api/user/add-rating", authToken(t, user.ID),
		fiber.Map{"courseId": 9999, "rating": 4})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Course not found", body["message"])
}
