package models

import "gorm.io/gorm"

type Technology struct {
	gorm.Model
	Name            string
	Category        string // vcs, ci_cd, container, orchestration, iac, monitoring, security
	Description     string
	LogoURL         string
	OfficialDocsURL string
	Phase           int // learning phase number
	SequenceOrder   int // order within phase
	Workflows       []WorkflowDiagram
}

type Course struct {
	gorm.Model
	TechnologyID      uint `gorm:"uniqueIndex"`
	Title             string
	Description       string
	Difficulty        string // beginner, intermediate, advanced
	EstimatedDuration int    // hours
	IsActive          bool   `gorm:"default:true"`
	Modules           []Module
}

type Module struct {
	gorm.Model
	CourseID      uint
	Title         string
	Description   string
	SequenceOrder int
	Lessons       []Lesson
}

type Lesson struct {
	gorm.Model
	ModuleID        uint
	Title           string
	Content         string // markdown
	LessonType      string // theory, practice, quiz, project
	SequenceOrder   int
	VideoURL        string
	DurationMinutes int
	IsFree          bool `gorm:"default:false"`
	CodeExamples    []CodeExample
	Exercises       []InteractiveExercise `gorm:"foreignKey:LessonID"`
}

type CodeExample struct {
	gorm.Model
	LessonID      uint
	Title         string
	Language      string
	Code          string
	SequenceOrder int
}

type WorkflowDiagram struct {
	gorm.Model
	TechnologyID  uint
	Title         string
	Description   string
	DiagramData   string // mermaid.js diagram source
	SequenceOrder int
}

// LessonCount counts lessons across all modules of the course.
// Only meaningful when Modules (and their Lessons) are preloaded.
func (c *Course) LessonCount() int {
	count := 0
	for _, m := range c.Modules {
		count += len(m.Lessons)
	}
	return count
}
