package models

import "gorm.io/gorm"

// UserProgress is the aggregate completion state of one user in one course.
// ProgressPercentage is always recomputed from the completion set, never
// hand-set.
type UserProgress struct {
	gorm.Model
	UserID               uint     `gorm:"uniqueIndex:idx_user_course"`
	CourseID             uint     `gorm:"uniqueIndex:idx_user_course"`
	CompletedLessons     []Lesson `gorm:"many2many:user_progress_completed_lessons"`
	ProgressPercentage   int
	LastAccessedLessonID *uint
}

// IsLessonCompleted reports membership in the loaded completion set.
func (p *UserProgress) IsLessonCompleted(lessonID uint) bool {
	for _, l := range p.CompletedLessons {
		if l.ID == lessonID {
			return true
		}
	}
	return false
}

// CompletionPercentage computes floor(100 * completed / total), with 0 for
// an empty course.
func CompletionPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}

// CourseProgressSummary is one dashboard row: a course and how far the
// user has gotten through it.
type CourseProgressSummary struct {
	CourseID           uint   `json:"course_id"`
	CourseTitle        string `json:"course_title"`
	Technology         string `json:"technology"`
	ProgressPercentage int    `json:"progress_percentage"`
	CompletedLessons   int    `json:"completed_lessons"`
	TotalLessons       int    `json:"total_lessons"`
}
