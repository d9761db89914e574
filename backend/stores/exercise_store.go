package stores

import (
	"errors"

	"devoops/backend/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// ExerciseStore is the read-only access to authored exercises.
type ExerciseStore interface {
	GetByID(id uint) (*models.InteractiveExercise, error)
	ListByLesson(lessonID uint) ([]models.InteractiveExercise, error)
}

type exerciseStore struct {
	db *gorm.DB
}

func NewExerciseStore(db *gorm.DB) ExerciseStore {
	return &exerciseStore{db: db}
}

func (s *exerciseStore) GetByID(id uint) (*models.InteractiveExercise, error) {
	var exercise models.InteractiveExercise
	if err := s.db.First(&exercise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (s *exerciseStore) ListByLesson(lessonID uint) ([]models.InteractiveExercise, error) {
	var exercises []models.InteractiveExercise
	if err := s.db.
		Where("lesson_id = ?", lessonID).
		Order("sequence_order ASC").
		Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}
