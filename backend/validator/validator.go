package validator

import (
	"fmt"
	"strings"

	"devoops/backend/models"
)

// Verdict is the outcome of grading one submission. It is returned to the
// client verbatim by the submission endpoints.
type Verdict struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Score    *int        `json:"score,omitempty"`
	MaxScore *int        `json:"max_score,omitempty"`
	Hint     string      `json:"hint,omitempty"`
	Answers  *QuizAnswer `json:"answers,omitempty"`

	// Graded is true only when the submission was actually compared
	// against the exercise. Empty input, misconfigured exercises and
	// unsupported kinds fail without touching stored state.
	Graded bool `json:"-"`
}

// QuizAnswer echoes both sides of a quiz comparison for client display.
type QuizAnswer struct {
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

// keyElements is the fixed catalog of substrings used for partial-credit
// feedback on code exercises: version-control commands, container
// build-file directives, and general code constructs. The catalog and the
// scoring formula are a behavioral contract with authored content; do not
// tweak them independently of the exercise seed data.
var keyElements = []string{
	// version control commands
	"git init",
	"git clone",
	"git add",
	"git commit",
	"git push",
	"git pull",
	"git status",
	"git branch",
	"git checkout",
	"git merge",
	// container build-file directives
	"FROM",
	"WORKDIR",
	"COPY",
	"RUN",
	"CMD",
	"ENTRYPOINT",
	"EXPOSE",
	"ENV",
	// general code constructs
	"import ",
	"def ",
	"class ",
	"open(",
	"read(",
	"write(",
}

// normalize collapses every whitespace run (including newlines) to a
// single space and trims the ends.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ValidateCode grades a code submission against the exercise's reference
// solution. The submission is never executed; grading is a whitespace-
// insensitive comparison plus a substring heuristic for partial credit.
func ValidateCode(submission string, exercise *models.InteractiveExercise) Verdict {
	maxScore := exercise.Points

	if strings.TrimSpace(submission) == "" {
		return Verdict{
			Success:  false,
			Message:  "Please write some code before submitting",
			Score:    intPtr(0),
			MaxScore: &maxScore,
		}
	}

	if normalize(submission) == normalize(exercise.SolutionCode) {
		return Verdict{
			Success:  true,
			Message:  "Perfect! Your solution is correct.",
			Score:    &exercise.Points,
			MaxScore: &maxScore,
			Graded:   true,
		}
	}

	// Partial credit: every key element the reference solution contains
	// but the submission lacks costs two points.
	var missing []string
	for _, element := range keyElements {
		if strings.Contains(exercise.SolutionCode, element) && !strings.Contains(submission, element) {
			missing = append(missing, element)
		}
	}

	score := exercise.Points - 2*len(missing)
	if score < 0 {
		score = 0
	}

	message := "Your solution is close but needs some adjustments."
	if countLines(submission) != countLines(exercise.SolutionCode) {
		message += " Your solution has a different number of lines than expected."
	}
	if len(missing) > 0 {
		message += fmt.Sprintf(" Missing key elements: %s.", strings.Join(missing, ", "))
	}

	return Verdict{
		Success:  false,
		Message:  message,
		Score:    &score,
		MaxScore: &maxScore,
		Graded:   true,
	}
}

// ValidateQuiz compares the stringified user answer against the configured
// correct answer, case-sensitive and exact. The verdict always echoes both
// answers back regardless of outcome.
func ValidateQuiz(answer interface{}, exercise *models.InteractiveExercise) Verdict {
	maxScore := exercise.Points

	opts, err := exercise.QuizOptions()
	if err != nil {
		return Verdict{
			Success:  false,
			Message:  "Exercise is not configured correctly",
			Score:    intPtr(0),
			MaxScore: &maxScore,
		}
	}

	userAnswer := fmt.Sprint(answer)
	correctAnswer := opts.CorrectAnswerText()
	echo := &QuizAnswer{UserAnswer: userAnswer, CorrectAnswer: correctAnswer}

	if userAnswer == correctAnswer {
		return Verdict{
			Success:  true,
			Message:  "Correct! Well done.",
			Score:    &exercise.Points,
			MaxScore: &maxScore,
			Answers:  echo,
			Graded:   true,
		}
	}

	return Verdict{
		Success:  false,
		Message:  "That's not quite right. Review the lesson and try again.",
		Score:    intPtr(0),
		MaxScore: &maxScore,
		Answers:  echo,
		Graded:   true,
	}
}

// NotSupported is the fixed verdict for exercise kinds without grading
// logic (matching, fill_blank). It carries no score field.
func NotSupported() Verdict {
	return Verdict{
		Success: false,
		Message: "Exercise type not supported yet",
	}
}

// countLines counts raw newline-separated segments; a trailing newline
// counts as an extra line.
func countLines(s string) int {
	return len(strings.Split(s, "\n"))
}

func intPtr(v int) *int {
	return &v
}
