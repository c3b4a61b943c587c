package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 100, 0, 100},
		{"twenty percent", 100, 20, 80},
		{"rounding", 49.99, 15, 42.49},
		{"full discount", 100, 100, 0},
		{"free course", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Course{Price: tt.price, Discount: tt.discount}
			assert.Equal(t, tt.want, c.EffectivePrice())
		})
	}
}

func TestTotalLectures(t *testing.T) {
	c := Course{
		Chapters: []Chapter{
			{Lectures: []Lecture{{}, {}}},
			{Lectures: []Lecture{{}}},
			{},
		},
	}
	assert.Equal(t, 3, c.TotalLectures())
}

func TestCompletedLecturesDecoding(t *testing.T) {
	var p CourseProgress

	// fresh record with nothing stored
	lectures, ok := p.CompletedLectures()
	assert.False(t, ok)
	assert.Empty(t, lectures)

	p.SetCompletedLectures([]uint{3, 7})
	lectures, ok = p.CompletedLectures()
	assert.True(t, ok)
	assert.Equal(t, []uint{3, 7}, lectures)

	assert.True(t, p.HasLecture(3))
	assert.False(t, p.HasLecture(4))

	// malformed stored value decodes as empty and reports invalid
	p.LectureCompleted = datatypes.JSON([]byte(`{"bogus":true}`))
	lectures, ok = p.CompletedLectures()
	assert.False(t, ok)
	assert.Empty(t, lectures)
}
