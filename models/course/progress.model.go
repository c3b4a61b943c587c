package course

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseProgress holds the set of lectures a user has completed for one
// course. One row per (user, course) pair, created lazily on first access.
type CourseProgress struct {
	gorm.Model
	UserID           string         `json:"userId" gorm:"not null;uniqueIndex:idx_user_course_progress"`
	CourseID         uint           `json:"courseId" gorm:"not null;uniqueIndex:idx_user_course_progress"`
	LectureCompleted datatypes.JSON `json:"lectureCompleted"`
	Completed        bool           `json:"completed" gorm:"default:false"`
}

// CompletedLectures decodes the stored set. A malformed or missing value
// decodes to an empty set; callers are expected to persist the reset.
func (p *CourseProgress) CompletedLectures() ([]uint, bool) {
	if len(p.LectureCompleted) == 0 {
		return []uint{}, false
	}
	var lectures []uint
	if err := json.Unmarshal(p.LectureCompleted, &lectures); err != nil {
		return []uint{}, false
	}
	return lectures, true
}

// SetCompletedLectures encodes the set back into the stored column.
func (p *CourseProgress) SetCompletedLectures(lectures []uint) {
	raw, _ := json.Marshal(lectures)
	p.LectureCompleted = datatypes.JSON(raw)
}

// HasLecture reports whether the lecture is already in the completed set.
func (p *CourseProgress) HasLecture(lectureID uint) bool {
	lectures, _ := p.CompletedLectures()
	for _, id := range lectures {
		if id == lectureID {
			return true
		}
	}
	return false
}
