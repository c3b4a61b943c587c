package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/go-resty/resty/v2"
)

const clerkAPIBase = "https://api.clerk.com/v1"

// SyncUserRoleToClerk mirrors a role change into the identity provider's
// public metadata so the frontend session picks it up. Best effort: a
// missing key or API failure is logged, not surfaced to the caller.
func SyncUserRoleToClerk(userID, role string) error {
	if config.AppConfig.ClerkSecretKey == "" {
		log.Println("CLERK_SECRET_KEY not set, skipping role sync for", userID)
		return nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.ClerkSecretKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"public_metadata": map[string]string{"role": role},
		}).
		Patch(fmt.Sprintf("%s/users/%s/metadata", clerkAPIBase, userID))
	if err != nil {
		log.Printf("Clerk role sync failed for %s: %v", userID, err)
		return err
	}
	if resp.StatusCode() >= 400 {
		log.Printf("Clerk role sync rejected for %s: %d %s", userID, resp.StatusCode(), resp.String())
		return fmt.Errorf("clerk API returned status %d", resp.StatusCode())
	}
	return nil
}
