package controllers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"devoops/backend/config"
	"devoops/backend/models"
	"devoops/backend/stores"
	"devoops/backend/utils"
	"devoops/backend/validator"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type ExercisesController struct {
	Exercises stores.ExerciseStore
	Attempts  stores.AttemptStore
	Cfg       *config.Config
}

func NewExercisesController(exercises stores.ExerciseStore, attempts stores.AttemptStore, cfg *config.Config) *ExercisesController {
	return &ExercisesController{Exercises: exercises, Attempts: attempts, Cfg: cfg}
}

// submissionInput is the wire format shared by both submission endpoints.
// Code exercises fill Code; quizzes fill Answers.Answer (string or number).
type submissionInput struct {
	Code    string `json:"code"`
	Answers struct {
		Answer interface{} `json:"answer"`
	} `json:"answers"`
}

func (ec *ExercisesController) GetExercise(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	exerciseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid exercise ID",
		})
	}

	exercise, err := ec.Exercises.GetByID(uint(exerciseID))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Exercise not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	payload := fiber.Map{
		"id":            exercise.ID,
		"title":         exercise.Title,
		"exercise_type": exercise.ExerciseType,
		"instructions":  exercise.Instructions,
		"initial_code":  exercise.InitialCode,
		"points":        exercise.Points,
		"order":         exercise.SequenceOrder,
	}

	// Quizzes expose the question and choices, never the correct answer.
	if exercise.ExerciseType == models.ExerciseKindQuiz {
		if opts, err := exercise.QuizOptions(); err == nil {
			payload["question"] = opts.Question
			payload["choices"] = opts.Choices
		}
	}

	response := fiber.Map{"exercise": payload}

	if attempt, err := ec.Attempts.GetByUserAndExercise(userID, uint(exerciseID)); err == nil {
		response["attempt"] = fiber.Map{
			"is_correct":      attempt.IsCorrect,
			"score":           attempt.Score,
			"code_submission": attempt.CodeSubmission,
			"attempted_at":    attempt.AttemptedAt,
			"completed_at":    attempt.CompletedAt,
		}
	}

	return c.JSON(response)
}

// SubmitSolution godoc
// @Summary Submit a code solution for validation
// @Description Grades the submission against the reference solution without executing it
// @Tags exercises
// @Accept json
// @Produce json
// @Param id path int true "Exercise ID"
// @Success 200 {object} validator.Verdict
// @Failure 400 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /exercises/{id}/validate [post]
func (ec *ExercisesController) SubmitSolution(c *fiber.Ctx) error {
	return ec.submit(c)
}

// SubmitQuizAnswer godoc
// @Summary Submit a quiz answer
// @Tags exercises
// @Accept json
// @Produce json
// @Param id path int true "Exercise ID"
// @Success 200 {object} validator.Verdict
// @Failure 400 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /exercises/{id}/quiz [post]
func (ec *ExercisesController) SubmitQuizAnswer(c *fiber.Ctx) error {
	return ec.submit(c)
}

// submit is the shared attempt lifecycle: find-or-initialize the attempt
// keyed by (user, exercise), grade by exercise kind, write back the
// verdict, and return the verdict payload verbatim.
func (ec *ExercisesController) submit(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	exerciseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid exercise ID",
		})
	}

	exercise, err := ec.Exercises.GetByID(uint(exerciseID))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Exercise not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Server error: " + err.Error(),
		})
	}

	var input submissionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid JSON data",
		})
	}

	var verdict validator.Verdict
	switch exercise.ExerciseType {
	case models.ExerciseKindCode:
		verdict = validator.ValidateCode(input.Code, exercise)
	case models.ExerciseKindQuiz:
		verdict = validator.ValidateQuiz(input.Answers.Answer, exercise)
	default:
		verdict = validator.NotSupported()
	}

	// Only graded submissions touch the attempt record; empty input,
	// misconfigured exercises and unsupported kinds leave state as-is.
	if verdict.Graded {
		if err := ec.recordAttempt(userID, exercise, input, verdict); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Server error: " + err.Error(),
			})
		}
	}

	return c.JSON(verdict)
}

func (ec *ExercisesController) recordAttempt(userID uint, exercise *models.InteractiveExercise, input submissionInput, verdict validator.Verdict) error {
	attempt, err := ec.Attempts.FindOrInit(userID, exercise.ID)
	if err != nil {
		return err
	}

	attempt.CodeSubmission = input.Code
	attempt.AttemptedAt = time.Now()
	attempt.IsCorrect = verdict.Success
	if verdict.Score != nil {
		attempt.Score = *verdict.Score
	}
	if verdict.Answers != nil {
		raw, err := json.Marshal(verdict.Answers)
		if err != nil {
			return err
		}
		attempt.Answers = datatypes.JSON(raw)
	}
	// CompletedAt is overwritten on each success but never cleared by a
	// later failed resubmission.
	if verdict.Success {
		now := time.Now()
		attempt.CompletedAt = &now
	}

	return ec.Attempts.Save(attempt)
}
