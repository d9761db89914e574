package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Exercise kinds. Matching and fill-blank exist in authored content but
// have no grading logic yet.
const (
	ExerciseKindCode      = "code"
	ExerciseKindQuiz      = "quiz"
	ExerciseKindMatching  = "matching"
	ExerciseKindFillBlank = "fill_blank"
)

var ErrQuizNotConfigured = errors.New("quiz exercise has no correct answer configured")

type InteractiveExercise struct {
	gorm.Model
	LessonID      uint
	Title         string
	ExerciseType  string // code, quiz, matching, fill_blank
	Instructions  string // rich text, display only
	InitialCode   string
	SolutionCode  string
	TestCases     datatypes.JSON // structured, unused by grading
	Options       datatypes.JSON // quiz payload, see QuizOptions
	Points        int
	SequenceOrder int
}

// QuizChoice is one selectable answer in a quiz exercise.
type QuizChoice struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// QuizOptions is the typed form of the Options column for quiz exercises.
// CorrectAnswer is kept loosely typed because authored content stores both
// strings and numbers; comparison happens on the stringified form.
type QuizOptions struct {
	Question      string       `json:"question"`
	Choices       []QuizChoice `json:"choices"`
	CorrectAnswer interface{}  `json:"correct_answer"`
}

// CorrectAnswerText returns the stringified correct answer.
func (o *QuizOptions) CorrectAnswerText() string {
	return fmt.Sprint(o.CorrectAnswer)
}

// QuizOptions parses the Options column. Returns ErrQuizNotConfigured when
// the payload is missing, unparseable, or lacks a correct_answer key.
func (e *InteractiveExercise) QuizOptions() (*QuizOptions, error) {
	if len(e.Options) == 0 {
		return nil, ErrQuizNotConfigured
	}

	var opts QuizOptions
	if err := json.Unmarshal(e.Options, &opts); err != nil {
		return nil, ErrQuizNotConfigured
	}
	if opts.CorrectAnswer == nil {
		return nil, ErrQuizNotConfigured
	}

	return &opts, nil
}
