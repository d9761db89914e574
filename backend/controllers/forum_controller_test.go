package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateThreadAndReply(t *testing.T) {
	_, lessons := seedCourse(t, "Forum Course", 1)
	threadsPath := fmt.Sprintf("/api/lessons/%d/threads", lessons[0].ID)

	resp, result := doRequest(t, "POST", threadsPath, map[string]string{
		"title": "Stuck on git init",
		"body":  "The command does nothing for me",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	thread := result["thread"].(map[string]interface{})
	assert.Equal(t, "Stuck on git init", thread["Title"])
	assert.Equal(t, "learner", thread["UserName"])
	threadID := thread["ID"].(float64)

	resp, _ = doRequest(t, "POST", fmt.Sprintf("/api/threads/%d/replies", int(threadID)), map[string]string{
		"body": "Did you run it inside the project directory?",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, result = doRequest(t, "GET", threadsPath, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	threads := result["threads"].([]interface{})
	assert.Len(t, threads, 1)
	replies := threads[0].(map[string]interface{})["Replies"].([]interface{})
	assert.Len(t, replies, 1)
}

func TestCreateThreadRequiresTitle(t *testing.T) {
	_, lessons := seedCourse(t, "Forum Validation Course", 1)

	resp, _ := doRequest(t, "POST", fmt.Sprintf("/api/lessons/%d/threads", lessons[0].ID), map[string]string{
		"body": "no title here",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReplyToUnknownThread(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/threads/999999/replies", map[string]string{
		"body": "hello?",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
