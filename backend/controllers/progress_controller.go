package controllers

import (
	"errors"
	"strconv"

	"devoops/backend/config"
	"devoops/backend/stores"
	"devoops/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Catalog  stores.CatalogStore
	Progress stores.ProgressStore
	Cfg      *config.Config
}

func NewProgressController(catalog stores.CatalogStore, progress stores.ProgressStore, cfg *config.Config) *ProgressController {
	return &ProgressController{Catalog: catalog, Progress: progress, Cfg: cfg}
}

// MarkLessonComplete godoc
// @Summary Toggle lesson completion
// @Description Marks a lesson as completed or incomplete and recomputes course progress
// @Tags progress
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons/{id}/complete [post]
func (pc *ProgressController) MarkLessonComplete(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	lesson, err := pc.Catalog.GetLesson(uint(lessonID))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lesson not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	course, err := pc.Catalog.CourseForLesson(lesson)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	// The body must be validated before any progress row is created: a
	// malformed payload is rejected without touching stored state.
	input := struct {
		Action string `json:"action"`
	}{Action: "complete"}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid JSON data",
			})
		}
	}

	progress, err := pc.Progress.GetOrCreate(userID, course.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save progress",
		})
	}

	var message string
	if input.Action == "incomplete" {
		changed, err := pc.Progress.MarkIncomplete(progress, lesson)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save progress",
			})
		}
		if changed {
			message = "Lesson marked as incomplete!"
		} else {
			message = "Lesson was already incomplete."
		}
	} else {
		changed, err := pc.Progress.MarkComplete(progress, lesson)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save progress",
			})
		}
		if changed {
			message = "Lesson marked as completed!"
		} else {
			message = "Lesson was already completed."
		}
	}

	total, err := pc.Progress.TotalLessons(course.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"status":              "success",
		"message":             message,
		"progress_percentage": progress.ProgressPercentage,
		"completed_lessons":   len(progress.CompletedLessons),
		"total_lessons":       total,
		"is_completed":        progress.IsLessonCompleted(lesson.ID),
	})
}

// GetCourseProgress godoc
// @Summary Get course progress
// @Description Returns the user's completion percentage for one course
// @Tags progress
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/progress [get]
func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	course, err := pc.Catalog.GetCourse(uint(courseID))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	total, err := pc.Progress.TotalLessons(course.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	progress, err := pc.Progress.Get(userID, course.ID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			// No record yet: everything defaults to zero.
			return c.JSON(fiber.Map{
				"progress_percentage": 0,
				"completed_lessons":   0,
				"total_lessons":       total,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"progress_percentage": progress.ProgressPercentage,
		"completed_lessons":   len(progress.CompletedLessons),
		"total_lessons":       total,
	})
}

// GetDashboard returns one progress row per course the user has touched.
func (pc *ProgressController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	summaries, err := pc.Progress.Summary(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"courses": summaries,
	})
}
