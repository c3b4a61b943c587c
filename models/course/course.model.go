package course

import (
	"math"

	"gorm.io/gorm"
)

// Course represents a marketplace course authored by an educator
type Course struct {
	gorm.Model
	Title       string         `json:"courseTitle" gorm:"not null"`
	Description string         `json:"courseDescription" gorm:"type:text"`
	Price       float64        `json:"coursePrice" gorm:"not null"`
	Discount    float64        `json:"discount" gorm:"default:0"` // percentage, 0-100
	Thumbnail   string         `json:"courseThumbnail"`
	IsPublished bool           `json:"isPublished" gorm:"default:false"`
	EducatorID  string         `json:"educator" gorm:"index;not null"`
	Chapters    []Chapter      `json:"courseContent" gorm:"foreignKey:CourseID"`
	Ratings     []CourseRating `json:"courseRatings" gorm:"foreignKey:CourseID"`
}

// EffectivePrice is the price after applying the discount percentage,
// rounded to 2 decimals.
func (c *Course) EffectivePrice() float64 {
	return math.Round((c.Price-(c.Discount*c.Price)/100)*100) / 100
}

// TotalLectures counts lectures across all loaded chapters.
func (c *Course) TotalLectures() int {
	total := 0
	for _, chapter := range c.Chapters {
		total += len(chapter.Lectures)
	}
	return total
}

// CourseRating is a single user's rating of a course. One row per
// (course, user) pair; resubmitting overwrites the value in place.
type CourseRating struct {
	gorm.Model
	CourseID uint   `json:"-" gorm:"not null;uniqueIndex:idx_course_user_rating"`
	UserID   string `json:"userId" gorm:"not null;uniqueIndex:idx_course_user_rating"`
	Rating   int    `json:"rating" gorm:"not null"` // 1-5
}
