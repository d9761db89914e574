package controllers

import (
	"errors"
	"strconv"

	"devoops/backend/config"
	"devoops/backend/models"
	"devoops/backend/stores"
	"devoops/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Catalog  stores.CatalogStore
	Progress stores.ProgressStore
	Cfg      *config.Config
}

func NewCoursesController(catalog stores.CatalogStore, progress stores.ProgressStore, cfg *config.Config) *CoursesController {
	return &CoursesController{Catalog: catalog, Progress: progress, Cfg: cfg}
}

func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	search := c.Query("search")
	difficulty := c.Query("difficulty")
	phase, _ := strconv.Atoi(c.Query("phase"))

	courses, err := cc.Catalog.ListCourses(search, difficulty, phase)
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch courses")
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":                 course.ID,
			"title":              course.Title,
			"description":        course.Description,
			"difficulty":         course.Difficulty,
			"estimated_duration": course.EstimatedDuration,
			"modules":            len(course.Modules),
			"lessons":            course.LessonCount(),
		})
	}

	return c.JSON(fiber.Map{
		"courses": result,
	})
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	course, err := cc.Catalog.GetCourse(uint(courseID))
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

	modules := make([]fiber.Map, 0, len(course.Modules))
	for _, module := range course.Modules {
		lessons := make([]fiber.Map, 0, len(module.Lessons))
		for _, lesson := range module.Lessons {
			lessons = append(lessons, fiber.Map{
				"id":               lesson.ID,
				"title":            lesson.Title,
				"lesson_type":      lesson.LessonType,
				"order":            lesson.SequenceOrder,
				"duration_minutes": lesson.DurationMinutes,
				"is_free":          lesson.IsFree,
			})
		}
		modules = append(modules, fiber.Map{
			"id":          module.ID,
			"title":       module.Title,
			"description": module.Description,
			"order":       module.SequenceOrder,
			"lessons":     lessons,
		})
	}

	response := fiber.Map{
		"course": fiber.Map{
			"id":                 course.ID,
			"title":              course.Title,
			"description":        course.Description,
			"difficulty":         course.Difficulty,
			"estimated_duration": course.EstimatedDuration,
			"modules":            modules,
		},
	}

	// Progress is attached only for authenticated callers; the course
	// page itself is public.
	if userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg); err == nil {
		if progress, err := cc.Progress.Get(userID, course.ID); err == nil {
			completedIDs := make([]uint, 0, len(progress.CompletedLessons))
			for _, l := range progress.CompletedLessons {
				completedIDs = append(completedIDs, l.ID)
			}
			response["progress"] = fiber.Map{
				"progress_percentage": progress.ProgressPercentage,
				"completed_lessons":   completedIDs,
			}
		}
	}

	return c.JSON(response)
}

// GetLessonDetails returns the lesson content with navigation links and
// records the view on the user's progress (get-or-create).
func (cc *CoursesController) GetLessonDetails(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
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

	lesson, err := cc.Catalog.GetLesson(uint(lessonID))
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

	course, err := cc.Catalog.CourseForLesson(lesson)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	progress, err := cc.Progress.GetOrCreate(userID, course.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save progress",
		})
	}
	if err := cc.Progress.RecordView(progress, lesson.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save progress",
		})
	}

	siblings, err := cc.Catalog.SiblingLessons(lesson)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var previous, next *models.Lesson
	position := 1
	for i := range siblings {
		if siblings[i].ID == lesson.ID {
			position = i + 1
			if i > 0 {
				previous = &siblings[i-1]
			}
			if i < len(siblings)-1 {
				next = &siblings[i+1]
			}
			break
		}
	}

	examples := make([]fiber.Map, 0, len(lesson.CodeExamples))
	for _, example := range lesson.CodeExamples {
		examples = append(examples, fiber.Map{
			"id":       example.ID,
			"title":    example.Title,
			"language": example.Language,
			"code":     example.Code,
		})
	}

	exercises := make([]fiber.Map, 0, len(lesson.Exercises))
	for _, exercise := range lesson.Exercises {
		exercises = append(exercises, fiber.Map{
			"id":            exercise.ID,
			"title":         exercise.Title,
			"exercise_type": exercise.ExerciseType,
			"points":        exercise.Points,
			"order":         exercise.SequenceOrder,
		})
	}

	response := fiber.Map{
		"lesson": fiber.Map{
			"id":               lesson.ID,
			"title":            lesson.Title,
			"content":          lesson.Content,
			"lesson_type":      lesson.LessonType,
			"video_url":        lesson.VideoURL,
			"duration_minutes": lesson.DurationMinutes,
			"code_examples":    examples,
			"exercises":        exercises,
		},
		"course_id":             course.ID,
		"current_lesson_number": position,
		"total_lessons":         len(siblings),
		"is_completed":          progress.IsLessonCompleted(lesson.ID),
	}
	if previous != nil {
		response["previous_lesson"] = fiber.Map{"id": previous.ID, "title": previous.Title}
	}
	if next != nil {
		response["next_lesson"] = fiber.Map{"id": next.ID, "title": next.Title}
	}

	return c.JSON(response)
}

// GetRoadmap groups technologies by learning phase.
func (cc *CoursesController) GetRoadmap(c *fiber.Ctx) error {
	technologies, err := cc.Catalog.ListTechnologies()
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch technologies")
	}

	phases := make(map[string][]fiber.Map)
	totalPhases := 0
	for _, tech := range technologies {
		key := strconv.Itoa(tech.Phase)
		phases[key] = append(phases[key], fiber.Map{
			"id":       tech.ID,
			"name":     tech.Name,
			"category": tech.Category,
			"order":    tech.SequenceOrder,
		})
		if tech.Phase > totalPhases {
			totalPhases = tech.Phase
		}
	}

	return c.JSON(fiber.Map{
		"phases":       phases,
		"total_phases": totalPhases,
	})
}

func (cc *CoursesController) GetTechnology(c *fiber.Ctx) error {
	technologyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid technology ID",
		})
	}

	technology, err := cc.Catalog.GetTechnology(uint(technologyID))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.NotFound(c, "Technology not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	related, err := cc.Catalog.RelatedCourses(technology, 4)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	workflows := make([]fiber.Map, 0, len(technology.Workflows))
	for _, workflow := range technology.Workflows {
		workflows = append(workflows, fiber.Map{
			"id":           workflow.ID,
			"title":        workflow.Title,
			"description":  workflow.Description,
			"diagram_data": workflow.DiagramData,
		})
	}

	relatedCourses := make([]fiber.Map, 0, len(related))
	for _, course := range related {
		relatedCourses = append(relatedCourses, fiber.Map{
			"id":         course.ID,
			"title":      course.Title,
			"difficulty": course.Difficulty,
		})
	}

	return c.JSON(fiber.Map{
		"technology": fiber.Map{
			"id":                technology.ID,
			"name":              technology.Name,
			"category":          technology.Category,
			"description":       technology.Description,
			"official_docs_url": technology.OfficialDocsURL,
			"phase":             technology.Phase,
			"workflows":         workflows,
		},
		"related_courses": relatedCourses,
	})
}

// Search is a thin title/description match over courses and technologies.
func (cc *CoursesController) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return utils.BadRequest(c, "Missing search query")
	}

	courses, err := cc.Catalog.ListCourses(query, "", 0)
	if err != nil {
		return utils.InternalServerError(c, "Search failed")
	}

	courseResults := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		courseResults = append(courseResults, fiber.Map{
			"id":         course.ID,
			"title":      course.Title,
			"difficulty": course.Difficulty,
		})
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"courses": courseResults,
	})
}
