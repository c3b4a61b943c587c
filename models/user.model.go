package models

import "time"

const (
	RoleStudent  = "student"
	RoleEducator = "educator"
)

// User mirrors the identity provider's record. The ID is issued externally
// and arrives through the identity webhook, so it is an opaque string key.
type User struct {
	ID        string    `json:"_id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"default:''"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	ImageUrl  string    `json:"imageUrl" gorm:"default:''"`
	Role      string    `json:"role" gorm:"default:'student'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
