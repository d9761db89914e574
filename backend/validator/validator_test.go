package validator_test

import (
	"strings"
	"testing"

	"devoops/backend/models"
	"devoops/backend/validator"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func codeExercise(solution string, points int) *models.InteractiveExercise {
	return &models.InteractiveExercise{
		ExerciseType: models.ExerciseKindCode,
		SolutionCode: solution,
		Points:       points,
	}
}

func quizExercise(options string, points int) *models.InteractiveExercise {
	return &models.InteractiveExercise{
		ExerciseType: models.ExerciseKindQuiz,
		Options:      datatypes.JSON([]byte(options)),
		Points:       points,
	}
}

func TestValidateCodeExactMatch(t *testing.T) {
	exercise := codeExercise("git init", 10)

	verdict := validator.ValidateCode("git init", exercise)
	assert.True(t, verdict.Success)
	assert.Equal(t, 10, *verdict.Score)
	assert.Equal(t, 10, *verdict.MaxScore)
}

func TestValidateCodeWhitespaceInsensitive(t *testing.T) {
	exercise := codeExercise("git init", 10)

	// Extra internal whitespace and surrounding newlines do not matter
	verdict := validator.ValidateCode("  git  init\n", exercise)
	assert.True(t, verdict.Success)
	assert.Equal(t, 10, *verdict.Score)

	multiline := codeExercise("FROM python:3.11-slim\nWORKDIR /app", 20)
	verdict = validator.ValidateCode("FROM python:3.11-slim   WORKDIR /app", multiline)
	assert.True(t, verdict.Success)
	assert.Equal(t, 20, *verdict.Score)
}

func TestValidateCodeEmptySubmission(t *testing.T) {
	exercise := codeExercise("git init", 10)

	for _, submission := range []string{"", "   ", "\n\t\n"} {
		verdict := validator.ValidateCode(submission, exercise)
		assert.False(t, verdict.Success)
		assert.Equal(t, 0, *verdict.Score)
	}
}

func TestValidateCodeIdempotent(t *testing.T) {
	exercise := codeExercise("git checkout -b feature-user-auth", 15)

	first := validator.ValidateCode("git checkout -b feature-user-auth", exercise)
	second := validator.ValidateCode("git checkout -b feature-user-auth", exercise)

	assert.True(t, first.Success)
	assert.True(t, second.Success)
	assert.Equal(t, *first.Score, *second.Score)
	assert.Equal(t, 15, *second.Score)
}

func TestValidateCodeMissingElements(t *testing.T) {
	exercise := codeExercise("FROM python:3.11-slim\nWORKDIR /app\nCOPY . .\nRUN pip install -r requirements.txt", 20)

	// FROM and COPY present, WORKDIR and RUN missing: 20 - 2*2 = 16
	verdict := validator.ValidateCode("FROM python:3.11-slim\nCOPY . .", exercise)
	assert.False(t, verdict.Success)
	assert.Equal(t, 16, *verdict.Score)
	assert.True(t, strings.HasPrefix(verdict.Message, "Your solution is close but needs some adjustments"))
	assert.Contains(t, verdict.Message, "WORKDIR")
	assert.Contains(t, verdict.Message, "RUN")
	assert.NotContains(t, verdict.Message, "FROM,")
}

func TestValidateCodeLineCountNote(t *testing.T) {
	exercise := codeExercise("git add app.py\ngit commit -m 'update'", 10)

	verdict := validator.ValidateCode("git add app.py", exercise)
	assert.False(t, verdict.Success)
	assert.Contains(t, verdict.Message, "different number of lines")
}

func TestValidateCodeTrailingNewlineCountsAsLine(t *testing.T) {
	exercise := codeExercise("git push", 10)

	// The trailing newline makes the submission two raw lines against a
	// one-line solution
	verdict := validator.ValidateCode("git pull\n", exercise)
	assert.False(t, verdict.Success)
	assert.Contains(t, verdict.Message, "different number of lines")
}

func TestValidateCodeScoreNeverNegative(t *testing.T) {
	exercise := codeExercise("git init\ngit add .\ngit commit -m 'x'\ngit push\ngit pull\ngit status", 4)

	verdict := validator.ValidateCode("echo hello", exercise)
	assert.False(t, verdict.Success)
	assert.Equal(t, 0, *verdict.Score)
	assert.GreaterOrEqual(t, *verdict.Score, 0)
	assert.LessOrEqual(t, *verdict.Score, exercise.Points)
}

func TestValidateQuizCorrectAnswer(t *testing.T) {
	exercise := quizExercise(`{
		"question": "Which command saves changes to the local repository?",
		"choices": [
			{"value": "A", "text": "git save"},
			{"value": "B", "text": "git commit"}
		],
		"correct_answer": "B"
	}`, 5)

	verdict := validator.ValidateQuiz("B", exercise)
	assert.True(t, verdict.Success)
	assert.Equal(t, 5, *verdict.Score)
	assert.Equal(t, "B", verdict.Answers.UserAnswer)
	assert.Equal(t, "B", verdict.Answers.CorrectAnswer)
}

func TestValidateQuizWrongAnswer(t *testing.T) {
	exercise := quizExercise(`{"question": "q", "choices": [], "correct_answer": "C"}`, 10)

	verdict := validator.ValidateQuiz("A", exercise)
	assert.False(t, verdict.Success)
	assert.Equal(t, 0, *verdict.Score)
	// The correct answer is always echoed back for display
	assert.Equal(t, "A", verdict.Answers.UserAnswer)
	assert.Equal(t, "C", verdict.Answers.CorrectAnswer)
}

func TestValidateQuizCaseSensitive(t *testing.T) {
	exercise := quizExercise(`{"question": "q", "choices": [], "correct_answer": "B"}`, 5)

	verdict := validator.ValidateQuiz("b", exercise)
	assert.False(t, verdict.Success)
	assert.Equal(t, 0, *verdict.Score)
}

func TestValidateQuizNumericAnswer(t *testing.T) {
	exercise := quizExercise(`{"question": "q", "choices": [], "correct_answer": 3}`, 5)

	verdict := validator.ValidateQuiz(float64(3), exercise)
	assert.True(t, verdict.Success)
	assert.Equal(t, 5, *verdict.Score)
}

func TestValidateQuizMissingCorrectAnswer(t *testing.T) {
	exercise := quizExercise(`{"question": "q", "choices": []}`, 5)

	verdict := validator.ValidateQuiz("A", exercise)
	assert.False(t, verdict.Success)
	assert.Equal(t, 0, *verdict.Score)
	assert.False(t, verdict.Graded)
}

func TestNotSupportedVerdict(t *testing.T) {
	verdict := validator.NotSupported()
	assert.False(t, verdict.Success)
	assert.Equal(t, "Exercise type not supported yet", verdict.Message)
	assert.Nil(t, verdict.Score)
}
