package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserExerciseAttempt is the latest submission of one user against one
// exercise. Resubmission overwrites the row instead of appending; the
// (user, exercise) unique index is the backstop against duplicate rows
// from concurrent submissions.
type UserExerciseAttempt struct {
	gorm.Model
	UserID         uint `gorm:"uniqueIndex:idx_user_exercise"`
	ExerciseID     uint `gorm:"uniqueIndex:idx_user_exercise"`
	CodeSubmission string
	Answers        datatypes.JSON
	IsCorrect      bool
	Score          int
	AttemptedAt    time.Time
	CompletedAt    *time.Time // set on first success, never cleared
}
