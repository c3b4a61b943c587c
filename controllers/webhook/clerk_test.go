package webhookController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testWebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:               "5000",
		JWTKey:             "test-secret",
		ClerkWebhookSecret: testWebhookSecret,
		CurrencyCode:       "USD",
		UploadDir:          t.TempDir(),
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/clerk", ClerkWebhook)
	return app
}

// postSignedEvent signs the payload the way the identity provider's
// delivery service does and posts it to the webhook route.
func postSignedEvent(t *testing.T, app *fiber.App, msgID string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	wh, err := svix.NewWebhook(testWebhookSecret)
	require.NoError(t, err)

	timestamp := time.Now()
	signature, err := wh.Sign(msgID, timestamp, raw)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/clerk", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("svix-id", msgID)
	req.Header.Set("svix-timestamp", fmt.Sprintf("%d", timestamp.Unix()))
	req.Header.Set("svix-signature", signature)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(rawBody, &body))
	return resp.StatusCode, body
}

func createdEvent(userID string) fiber.Map {
	return fiber.Map{
		"type": "user.created",
		"data": fiber.Map{
			"id":              userID,
			"first_name":      "Sam",
			"last_name":       "Student",
			"image_url":       "https://img.test/sam.png",
			"email_addresses": []fiber.Map{{"email_address": "sam@example.com"}},
		},
	}
}

func TestUserCreatedIsIdempotent(t *testing.T) {
	app := setupTest(t)
	db := database.Database.Db

	status, body := postSignedEvent(t, app, "msg_1", createdEvent("user_1"))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])

	status, body = postSignedEvent(t, app, "msg_2", createdEvent("user_1"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User already exists", body["message"])

	var count int64
	db.Model(&models.User{}).Where("id = ?", "user_1").Count(&count)
	assert.Equal(t, int64(1), count)

	var user models.User
	require.NoError(t, db.Where("id = ?", "user_1").First(&user).Error)
	assert.Equal(t, "Sam Student", user.Name)
	assert.Equal(t, "sam@example.com", user.Email)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestUserCreatedWithoutNameDefaults(t *testing.T) {
	app := setupTest(t)

	event := fiber.Map{
		"type": "user.created",
		"data": fiber.Map{
			"id":              "user_2",
			"email_addresses": []fiber.Map{{"email_address": "anon@example.com"}},
		},
	}
	status, _ := postSignedEvent(t, app, "msg_1", event)
	assert.Equal(t, http.StatusCreated, status)

	var user models.User
	require.NoError(t, database.Database.Db.Where("id = ?", "user_2").First(&user).Error)
	assert.Equal(t, "User", user.Name)
}

func TestUserUpdatedOverwritesProfile(t *testing.T) {
	app := setupTest(t)
	db := database.Database.Db

	require.NoError(t, db.Create(&models.User{
		ID:    "user_1",
		Name:  "Old Name",
		Email: "old@example.com",
	}).Error)

	event := fiber.Map{
		"type": "user.updated",
		"data": fiber.Map{
			"id":              "user_1",
			"first_name":      "New",
			"last_name":       "Name",
			"image_url":       "https://img.test/new.png",
			"email_addresses": []fiber.Map{{"email_address": "new@example.com"}},
			"unknown_field":   "ignored",
		},
	}
	status, body := postSignedEvent(t, app, "msg_1", event)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	var user models.User
	require.NoError(t, db.Where("id = ?", "user_1").First(&user).Error)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "https://img.test/new.png", user.ImageUrl)
}

func TestUserDeletedCascades(t *testing.T) {
	app := setupTest(t)
	db := database.Database.Db

	require.NoError(t, db.Create(&models.User{ID: "user_1", Email: "sam@example.com"}).Error)
	require.NoError(t, db.Create(&courseModels.Enrollment{UserID: "user_1", CourseID: 1}).Error)
	progress := courseModels.CourseProgress{UserID: "user_1", CourseID: 1}
	progress.SetCompletedLectures([]uint{1})
	require.NoError(t, db.Create(&progress).Error)
	require.NoError(t, db.Create(&models.Purchase{UserID: "user_1", CourseID: 1, Amount: 80, Status: models.PurchaseCompleted}).Error)

	event := fiber.Map{
		"type": "user.deleted",
		"data": fiber.Map{"id": "user_1"},
	}
	status, body := postSignedEvent(t, app, "msg_1", event)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	var userCount, enrollmentCount, progressCount, purchaseCount int64
	db.Model(&models.User{}).Where("id = ?", "user_1").Count(&userCount)
	db.Model(&courseModels.Enrollment{}).Where("user_id = ?", "user_1").Count(&enrollmentCount)
	db.Model(&courseModels.CourseProgress{}).Where("user_id = ?", "user_1").Count(&progressCount)
	db.Model(&models.Purchase{}).Where("user_id = ?", "user_1").Count(&purchaseCount)

	assert.Equal(t, int64(0), userCount)
	assert.Equal(t, int64(0), enrollmentCount)
	assert.Equal(t, int64(0), progressCount)
	// Purchases stay behind as the financial ledger.
	assert.Equal(t, int64(1), purchaseCount)
}

func TestUnhandledEventTypeRejected(t *testing.T) {
	app := setupTest(t)

	event := fiber.Map{
		"type": "session.created",
		"data": fiber.Map{"id": "sess_1"},
	}
	status, body := postSignedEvent(t, app, "msg_1", event)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unhandled event type", body["message"])
}

func TestMissingSvixHeaders(t *testing.T) {
	app := setupTest(t)

	raw, err := json.Marshal(createdEvent("user_1"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/clerk", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBadSignatureRejected(t *testing.T) {
	app := setupTest(t)

	raw, err := json.Marshal(createdEvent("user_1"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/clerk", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", fmt.Sprintf("%d", time.Now().Unix()))
	req.Header.Set("svix-signature", "v1,bm90LWEtcmVhbC1zaWduYXR1cmU=")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUnconfiguredSecretIsFatal(t *testing.T) {
	app := setupTest(t)
	config.AppConfig.ClerkWebhookSecret = ""

	raw, err := json.Marshal(createdEvent("user_1"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/clerk", bytes.NewReader(raw))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
