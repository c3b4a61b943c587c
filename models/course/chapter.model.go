package course

import "gorm.io/gorm"

// Chapter is a section of a course. OrderIndex is assigned at creation as
// previous chapter's order + 1 and never renumbered on deletion, so gaps
// are possible; readers must sort by the stored value.
type Chapter struct {
	gorm.Model
	CourseID   uint      `json:"-" gorm:"index;not null"`
	Title      string    `json:"chapterTitle"`
	OrderIndex int       `json:"chapterOrder" gorm:"column:order_index;default:1"`
	Lectures   []Lecture `json:"chapterContent" gorm:"foreignKey:ChapterID"`
}

// Lecture is a single video lecture within a chapter. URL redaction for
// non-preview lectures happens on the course-detail read path, never here.
type Lecture struct {
	gorm.Model
	ChapterID     uint    `json:"-" gorm:"index;not null"`
	Title         string  `json:"lectureTitle"`
	URL           string  `json:"lectureUrl"`
	Duration      float64 `json:"lectureDuration"` // minutes
	IsPreviewFree bool    `json:"isPreviewFree" gorm:"default:false"`
	OrderIndex    int     `json:"lectureOrder" gorm:"column:order_index;default:1"`
}
