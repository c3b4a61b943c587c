package models

import "gorm.io/gorm"

const (
	PurchasePending   = "pending"
	PurchaseCompleted = "completed"
	PurchaseFailed    = "failed"
)

// Purchase is one row per purchase attempt. Amount is the effective course
// price at purchase time and is never recomputed afterwards.
type Purchase struct {
	gorm.Model
	CourseID uint    `json:"courseId" gorm:"index;not null"`
	UserID   string  `json:"userId" gorm:"index;not null"`
	Amount   float64 `json:"amount" gorm:"not null"`
	Status   string  `json:"status" gorm:"default:'pending'"` // pending, completed, failed
}
