package controllers_test

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"testing"

	"devoops/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCourseProgressDefaultsToZero(t *testing.T) {
	course, _ := seedCourse(t, "Untouched Course", 3)

	resp, result := doRequest(t, "GET", fmt.Sprintf("/api/courses/%d/progress", course.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), result["progress_percentage"])
	assert.Equal(t, float64(0), result["completed_lessons"])
	assert.Equal(t, float64(3), result["total_lessons"])
}

func TestMarkLessonCompleteFlow(t *testing.T) {
	course, lessons := seedCourse(t, "Progress Course", 4)

	completePath := func(i int) string {
		return fmt.Sprintf("/api/lessons/%d/complete", lessons[i].ID)
	}

	// First lesson: 1/4 = 25%
	resp, result := doRequest(t, "POST", completePath(0), map[string]string{"action": "complete"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lesson marked as completed!", result["message"])
	assert.Equal(t, float64(25), result["progress_percentage"])
	assert.Equal(t, true, result["is_completed"])

	// Second lesson: 2/4 = 50%
	_, result = doRequest(t, "POST", completePath(1), map[string]string{"action": "complete"})
	assert.Equal(t, float64(50), result["progress_percentage"])

	// Re-completing the first lesson is a no-op
	_, result = doRequest(t, "POST", completePath(0), map[string]string{"action": "complete"})
	assert.Equal(t, "Lesson was already completed.", result["message"])
	assert.Equal(t, float64(50), result["progress_percentage"])

	// Un-completing the first lesson drops back to 25%
	_, result = doRequest(t, "POST", completePath(0), map[string]string{"action": "incomplete"})
	assert.Equal(t, "Lesson marked as incomplete!", result["message"])
	assert.Equal(t, float64(25), result["progress_percentage"])
	assert.Equal(t, false, result["is_completed"])

	// The query endpoint agrees
	_, result = doRequest(t, "GET", fmt.Sprintf("/api/courses/%d/progress", course.ID), nil)
	assert.Equal(t, float64(25), result["progress_percentage"])
	assert.Equal(t, float64(1), result["completed_lessons"])
	assert.Equal(t, float64(4), result["total_lessons"])
}

func TestMarkLessonCompleteDefaultsToComplete(t *testing.T) {
	_, lessons := seedCourse(t, "Default Action Course", 2)

	// No body at all defaults to the complete action
	resp, result := doRequest(t, "POST", fmt.Sprintf("/api/lessons/%d/complete", lessons[0].ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lesson marked as completed!", result["message"])
	assert.Equal(t, float64(50), result["progress_percentage"])
}

func TestMarkLessonCompleteMalformedBody(t *testing.T) {
	course, lessons := seedCourse(t, "Malformed Body Course", 1)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/lessons/%d/complete", lessons[0].ID), bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", jwtToken)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// A rejected payload must not leave a progress record behind
	var count int64
	db.Model(&models.UserProgress{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMarkLessonCompleteUnknownLesson(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/lessons/999999/complete", map[string]string{"action": "complete"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLessonDetailRecordsView(t *testing.T) {
	course, lessons := seedCourse(t, "Viewing Course", 3)

	resp, result := doRequest(t, "GET", fmt.Sprintf("/api/lessons/%d", lessons[1].ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), result["current_lesson_number"])
	assert.Equal(t, float64(3), result["total_lessons"])
	assert.Equal(t, false, result["is_completed"])
	assert.NotNil(t, result["previous_lesson"])
	assert.NotNil(t, result["next_lesson"])

	// Viewing created the progress record and set the last-accessed
	// pointer, without completing anything
	var progress models.UserProgress
	err := db.Where("course_id = ?", course.ID).First(&progress).Error
	assert.NoError(t, err)
	assert.Equal(t, lessons[1].ID, *progress.LastAccessedLessonID)
	assert.Equal(t, 0, progress.ProgressPercentage)
}

func TestDashboardSummaries(t *testing.T) {
	course, lessons := seedCourse(t, "Dashboard Course", 2)

	_, _ = doRequest(t, "POST", fmt.Sprintf("/api/lessons/%d/complete", lessons[0].ID), map[string]string{"action": "complete"})

	resp, result := doRequest(t, "GET", "/api/dashboard", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	courses := result["courses"].([]interface{})
	var found map[string]interface{}
	for _, entry := range courses {
		row := entry.(map[string]interface{})
		if row["course_id"] == float64(course.ID) {
			found = row
			break
		}
	}
	assert.NotNil(t, found)
	assert.Equal(t, "Dashboard Course", found["course_title"])
	assert.Equal(t, float64(50), found["progress_percentage"])
}
