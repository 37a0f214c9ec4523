package course

import (
	"errors"
	"time"
)

var ErrLessonNotFound = errors.New("lesson not found")

// Lesson is a single content unit: markdown text and/or an embedded video.
// YouTubeURL holds the raw string the author entered; normalization into an
// embeddable video ID happens at render time.
type Lesson struct {
	ID         int64     `json:"id"`
	ModuleID   int64     `json:"moduleId"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	YouTubeURL string    `json:"youtubeUrl,omitempty"`
	SortOrder  int       `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// LessonForm is the parsed admin form payload for create/update.
type LessonForm struct {
	ModuleID   int64
	Title      string
	Content    string
	YouTubeURL string
	SortOrder  int
}
