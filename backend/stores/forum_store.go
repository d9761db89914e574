package stores

import (
	"devoops/backend/models"

	"gorm.io/gorm"
)

// ForumStore handles the per-lesson discussion threads.
type ForumStore interface {
	ListByLesson(lessonID uint) ([]models.LessonThread, error)
	CreateThread(thread *models.LessonThread) error
	AddReply(reply *models.ThreadReply) error
	GetThread(id uint) (*models.LessonThread, error)
}

type forumStore struct {
	db *gorm.DB
}

func NewForumStore(db *gorm.DB) ForumStore {
	return &forumStore{db: db}
}

func (s *forumStore) ListByLesson(lessonID uint) ([]models.LessonThread, error) {
	var threads []models.LessonThread
	err := s.db.
		Preload("Replies").
		Where("lesson_id = ?", lessonID).
		Order("created_at DESC").
		Find(&threads).Error
	return threads, err
}

func (s *forumStore) CreateThread(thread *models.LessonThread) error {
	return s.db.Create(thread).Error
}

func (s *forumStore) AddReply(reply *models.ThreadReply) error {
	return s.db.Create(reply).Error
}

func (s *forumStore) GetThread(id uint) (*models.LessonThread, error) {
	var thread models.LessonThread
	if err := s.db.First(&thread, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &thread, nil
}
