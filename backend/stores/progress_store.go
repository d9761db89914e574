package stores

import (
	"errors"

	"devoops/backend/models"

	"gorm.io/gorm"
)

// ProgressStore maintains the per-(user, course) completion record. The
// percentage is recomputed from the completion set on every mutation and
// is never written directly.
type ProgressStore interface {
	GetOrCreate(userID, courseID uint) (*models.UserProgress, error)
	Get(userID, courseID uint) (*models.UserProgress, error)
	MarkComplete(progress *models.UserProgress, lesson *models.Lesson) (bool, error)
	MarkIncomplete(progress *models.UserProgress, lesson *models.Lesson) (bool, error)
	RecordView(progress *models.UserProgress, lessonID uint) error
	TotalLessons(courseID uint) (int, error)
	Summary(userID uint) ([]models.CourseProgressSummary, error)
}

type progressStore struct {
	db *gorm.DB
}

func NewProgressStore(db *gorm.DB) ProgressStore {
	return &progressStore{db: db}
}

func (s *progressStore) GetOrCreate(userID, courseID uint) (*models.UserProgress, error) {
	progress, err := s.Get(userID, courseID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	created := models.UserProgress{
		UserID:             userID,
		CourseID:           courseID,
		ProgressPercentage: 0,
	}
	if err := s.db.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *progressStore) Get(userID, courseID uint) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := s.db.
		Preload("CompletedLessons").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// MarkComplete adds the lesson to the completion set and recomputes the
// percentage against the course's current lesson total. Returns false
// without touching anything when the lesson is already completed.
func (s *progressStore) MarkComplete(progress *models.UserProgress, lesson *models.Lesson) (bool, error) {
	if progress.IsLessonCompleted(lesson.ID) {
		return false, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(progress).Association("CompletedLessons").Append(lesson); err != nil {
			return err
		}
		return s.recompute(tx, progress, &lesson.ID)
	})
	if err != nil {
		return false, err
	}

	if !progress.IsLessonCompleted(lesson.ID) {
		progress.CompletedLessons = append(progress.CompletedLessons, *lesson)
	}
	return true, nil
}

// MarkIncomplete is the symmetric removal. Returns false when the lesson
// was not in the completion set.
func (s *progressStore) MarkIncomplete(progress *models.UserProgress, lesson *models.Lesson) (bool, error) {
	if !progress.IsLessonCompleted(lesson.ID) {
		return false, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(progress).Association("CompletedLessons").Delete(lesson); err != nil {
			return err
		}
		return s.recompute(tx, progress, nil)
	})
	if err != nil {
		return false, err
	}

	kept := progress.CompletedLessons[:0]
	for _, l := range progress.CompletedLessons {
		if l.ID != lesson.ID {
			kept = append(kept, l)
		}
	}
	progress.CompletedLessons = kept
	return true, nil
}

// recompute refreshes the percentage from the stored completion set and
// the course's current lesson total, and persists the scalar fields
// without rewriting associations.
func (s *progressStore) recompute(tx *gorm.DB, progress *models.UserProgress, lastLessonID *uint) error {
	completed := int(tx.Model(progress).Association("CompletedLessons").Count())

	total, err := totalLessons(tx, progress.CourseID)
	if err != nil {
		return err
	}

	progress.ProgressPercentage = models.CompletionPercentage(completed, total)
	updates := map[string]interface{}{
		"progress_percentage": progress.ProgressPercentage,
	}
	if lastLessonID != nil {
		progress.LastAccessedLessonID = lastLessonID
		updates["last_accessed_lesson_id"] = *lastLessonID
	}

	return tx.Model(progress).Updates(updates).Error
}

// RecordView updates the last-accessed pointer only; the completion set
// and percentage are untouched.
func (s *progressStore) RecordView(progress *models.UserProgress, lessonID uint) error {
	progress.LastAccessedLessonID = &lessonID
	return s.db.Model(progress).Update("last_accessed_lesson_id", lessonID).Error
}

func (s *progressStore) TotalLessons(courseID uint) (int, error) {
	return totalLessons(s.db, courseID)
}

func totalLessons(db *gorm.DB, courseID uint) (int, error) {
	var count int64
	err := db.Model(&models.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&count).Error
	return int(count), err
}

// Summary produces one dashboard row per course the user has progress in.
func (s *progressStore) Summary(userID uint) ([]models.CourseProgressSummary, error) {
	var records []models.UserProgress
	if err := s.db.
		Preload("CompletedLessons").
		Where("user_id = ?", userID).
		Find(&records).Error; err != nil {
		return nil, err
	}

	summaries := make([]models.CourseProgressSummary, 0, len(records))
	for _, record := range records {
		var course models.Course
		if err := s.db.First(&course, record.CourseID).Error; err != nil {
			continue
		}

		var technology models.Technology
		s.db.First(&technology, course.TechnologyID)

		total, err := totalLessons(s.db, course.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, models.CourseProgressSummary{
			CourseID:           course.ID,
			CourseTitle:        course.Title,
			Technology:         technology.Name,
			ProgressPercentage: record.ProgressPercentage,
			CompletedLessons:   len(record.CompletedLessons),
			TotalLessons:       total,
		})
	}
	return summaries, nil
}
