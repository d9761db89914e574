package stores

import (
	"errors"

	"devoops/backend/models"

	"gorm.io/gorm"
)

// AttemptStore keeps at most one attempt per (user, exercise); a
// resubmission overwrites the existing row. The unique index on the key
// pair backs up the find-or-initialize sequence against concurrent
// submissions from the same user.
type AttemptStore interface {
	FindOrInit(userID, exerciseID uint) (*models.UserExerciseAttempt, error)
	Save(attempt *models.UserExerciseAttempt) error
	GetByUserAndExercise(userID, exerciseID uint) (*models.UserExerciseAttempt, error)
}

type attemptStore struct {
	db *gorm.DB
}

func NewAttemptStore(db *gorm.DB) AttemptStore {
	return &attemptStore{db: db}
}

func (s *attemptStore) FindOrInit(userID, exerciseID uint) (*models.UserExerciseAttempt, error) {
	var attempt models.UserExerciseAttempt
	err := s.db.Where("user_id = ? AND exercise_id = ?", userID, exerciseID).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserExerciseAttempt{
				UserID:     userID,
				ExerciseID: exerciseID,
			}, nil
		}
		return nil, err
	}
	return &attempt, nil
}

func (s *attemptStore) Save(attempt *models.UserExerciseAttempt) error {
	return s.db.Save(attempt).Error
}

func (s *attemptStore) GetByUserAndExercise(userID, exerciseID uint) (*models.UserExerciseAttempt, error) {
	var attempt models.UserExerciseAttempt
	if err := s.db.Where("user_id = ? AND exercise_id = ?", userID, exerciseID).First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}
