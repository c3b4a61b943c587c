package webhookController

import (
	"encoding/json"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	svix "github.com/svix/svix-webhooks/go"
	"gorm.io/gorm"
)

// clerkEvent is the signed envelope the identity provider delivers.
// Unknown fields in data are ignored.
type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageUrl       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

func (e *clerkEvent) name() string {
	name := strings.TrimSpace(strings.TrimSpace(e.Data.FirstName) + " " + strings.TrimSpace(e.Data.LastName))
	if name == "" {
		return "User"
	}
	return name
}

func (e *clerkEvent) email() string {
	if len(e.Data.EmailAddresses) == 0 {
		return ""
	}
	return e.Data.EmailAddresses[0].EmailAddress
}

// ClerkWebhook keeps the user table in sync with identity provider
// lifecycle events. The raw body is verified against the Svix signature
// headers before anything in it is trusted, so this route must not sit
// behind any body-parsing middleware.
func ClerkWebhook(c *fiber.Ctx) error {
	if config.AppConfig.ClerkWebhookSecret == "" {
		log.Println("CLERK_WEBHOOK_SECRET not configured")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Webhook secret not configured", nil)
	}

	svixID := c.Get("svix-id")
	svixTimestamp := c.Get("svix-timestamp")
	svixSignature := c.Get("svix-signature")
	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing Svix headers", nil)
	}

	wh, err := svix.NewWebhook(config.AppConfig.ClerkWebhookSecret)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Invalid webhook secret", nil)
	}

	payload := c.Body()
	headers := http.Header{}
	headers.Set("svix-id", svixID)
	headers.Set("svix-timestamp", svixTimestamp)
	headers.Set("svix-signature", svixSignature)

	if err := wh.Verify(payload, headers); err != nil {
		log.Printf("Webhook verification failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Webhook verification failed", nil)
	}

	var event clerkEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payload", nil)
	}

	db := database.Database.Db

	switch event.Type {
	case "user.created":
		var existing models.User
		if err := db.Where("id = ?", event.Data.ID).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "User already exists", nil)
		}

		user := models.User{
			ID:       event.Data.ID,
			Name:     event.name(),
			Email:    event.email(),
			ImageUrl: event.Data.ImageUrl,
			Role:     models.RoleStudent,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error creating user %s: %v", event.Data.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created", fiber.Map{"user": user})

	case "user.updated":
		updates := map[string]interface{}{
			"name":      event.name(),
			"email":     event.email(),
			"image_url": event.Data.ImageUrl,
		}
		if err := db.Model(&models.User{}).Where("id = ?", event.Data.ID).Updates(updates).Error; err != nil {
			log.Printf("Error updating user %s: %v", event.Data.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated", nil)

	case "user.deleted":
		// Enrollments and progress go with the user; purchases stay as
		// the financial ledger.
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", event.Data.ID).Delete(&courseModels.Enrollment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", event.Data.ID).Delete(&courseModels.CourseProgress{}).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", event.Data.ID).Delete(&models.User{}).Error
		})
		if err != nil {
			log.Printf("Error deleting user %s: %v", event.Data.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted", nil)

	default:
		log.Printf("Unhandled event type: %s", event.Type)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unhandled event type", nil)
	}
}
