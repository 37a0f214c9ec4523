package course

import (
	"errors"
	"time"
)

var ErrModuleNotFound = errors.New("module not found")

// Module is a top-level course unit containing ordered lessons.
type Module struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ModuleSummary is a module plus its lesson count, for the admin dashboard.
type ModuleSummary struct {
	Module
	LessonCount int `json:"lessonCount"`
}

// ModuleForm is the parsed admin form payload. Fields are already trimmed
// by the handler; SortOrder defaults to 0 when the raw value is missing or
// not numeric.
type ModuleForm struct {
	Title       string
	Description string
	SortOrder   int
}
