package stores

import (
	"errors"

	"devoops/backend/models"

	"gorm.io/gorm"
)

// CatalogStore is the read side of the authored content: courses, modules,
// lessons, technologies. Authoring itself happens out of band.
type CatalogStore interface {
	ListCourses(search, difficulty string, phase int) ([]models.Course, error)
	GetCourse(id uint) (*models.Course, error)
	GetLesson(id uint) (*models.Lesson, error)
	CourseForLesson(lesson *models.Lesson) (*models.Course, error)
	SiblingLessons(lesson *models.Lesson) ([]models.Lesson, error)
	GetTechnology(id uint) (*models.Technology, error)
	ListTechnologies() ([]models.Technology, error)
	RelatedCourses(technology *models.Technology, limit int) ([]models.Course, error)
}

type catalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) CatalogStore {
	return &catalogStore{db: db}
}

func (s *catalogStore) ListCourses(search, difficulty string, phase int) ([]models.Course, error) {
	query := s.db.Model(&models.Course{}).Where("is_active = ?", true)

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if phase > 0 {
		query = query.
			Joins("JOIN technologies ON technologies.id = courses.technology_id").
			Where("technologies.phase = ?", phase)
	}

	var courses []models.Course
	if err := query.Preload("Modules.Lessons").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *catalogStore) GetCourse(id uint) (*models.Course, error) {
	var course models.Course
	err := s.db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("modules.sequence_order ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.sequence_order ASC")
		}).
		Where("is_active = ?", true).
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (s *catalogStore) GetLesson(id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	err := s.db.
		Preload("CodeExamples", func(db *gorm.DB) *gorm.DB {
			return db.Order("code_examples.sequence_order ASC")
		}).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("interactive_exercises.sequence_order ASC")
		}).
		First(&lesson, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

func (s *catalogStore) CourseForLesson(lesson *models.Lesson) (*models.Course, error) {
	var module models.Module
	if err := s.db.First(&module, lesson.ModuleID).Error; err != nil {
		return nil, err
	}

	var course models.Course
	if err := s.db.First(&course, module.CourseID).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// SiblingLessons returns every lesson of the same module in order, for
// previous/next navigation.
func (s *catalogStore) SiblingLessons(lesson *models.Lesson) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.db.
		Where("module_id = ?", lesson.ModuleID).
		Order("sequence_order ASC").
		Find(&lessons).Error
	return lessons, err
}

func (s *catalogStore) GetTechnology(id uint) (*models.Technology, error) {
	var technology models.Technology
	err := s.db.
		Preload("Workflows", func(db *gorm.DB) *gorm.DB {
			return db.Order("workflow_diagrams.sequence_order ASC")
		}).
		First(&technology, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &technology, nil
}

func (s *catalogStore) ListTechnologies() ([]models.Technology, error) {
	var technologies []models.Technology
	err := s.db.Order("phase ASC, sequence_order ASC").Find(&technologies).Error
	return technologies, err
}

// RelatedCourses finds active courses for other technologies in the same
// category.
func (s *catalogStore) RelatedCourses(technology *models.Technology, limit int) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.
		Joins("JOIN technologies ON technologies.id = courses.technology_id").
		Where("technologies.category = ? AND technologies.id != ? AND courses.is_active = ?",
			technology.Category, technology.ID, true).
		Limit(limit).
		Find(&courses).Error
	return courses, err
}
