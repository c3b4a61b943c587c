package course

import "gorm.io/gorm"

// Enrollment links a user to a course they purchased. A user enrolls in a
// course at most once; the unique index makes a second purchase fail loudly
// instead of silently duplicating.
type Enrollment struct {
	gorm.Model
	UserID   string `json:"userId" gorm:"not null;uniqueIndex:idx_user_course_enrollment"`
	CourseID uint   `json:"courseId" gorm:"not null;uniqueIndex:idx_user_course_enrollment"`
}
