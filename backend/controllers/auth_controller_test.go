package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRegisterThenLogin(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/auth/register", map[string]string{
		"username":      "roundtrip",
		"email":         "roundtrip@example.com",
		"password_hash": "hunter2secret",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result["token"])

	// The password sent at registration must authenticate afterwards
	resp, result = doRequest(t, "POST", "/api/auth/login", map[string]string{
		"username": "roundtrip",
		"password": "hunter2secret",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result["token"])

	user := result["user"].(map[string]interface{})
	assert.Equal(t, "roundtrip", user["username"])
	assert.Equal(t, "roundtrip@example.com", user["email"])
}

func TestLoginWrongPassword(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/auth/register", map[string]string{
		"username":      "wrongpass",
		"email":         "wrongpass@example.com",
		"password_hash": "correct-password",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, "POST", "/api/auth/login", map[string]string{
		"username": "wrongpass",
		"password": "other-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
