package controllers

import (
	"errors"
	"strconv"

	"devoops/backend/config"
	"devoops/backend/models"
	"devoops/backend/stores"
	"devoops/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ForumController struct {
	DB    *gorm.DB
	Forum stores.ForumStore
	Cfg   *config.Config
}

func NewForumController(db *gorm.DB, forum stores.ForumStore, cfg *config.Config) *ForumController {
	return &ForumController{DB: db, Forum: forum, Cfg: cfg}
}

func (fc *ForumController) GetLessonThreads(c *fiber.Ctx) error {
	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	threads, err := fc.Forum.ListByLesson(uint(lessonID))
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"threads": threads,
	})
}

func (fc *ForumController) CreateThread(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Thread title is required")
	}

	var user models.User
	if err := fc.DB.First(&user, userID).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	thread := models.LessonThread{
		LessonID: uint(lessonID),
		UserID:   userID,
		UserName: user.Username,
		Title:    input.Title,
		Body:     input.Body,
	}
	if err := fc.Forum.CreateThread(&thread); err != nil {
		return utils.InternalServerError(c, "Could not create thread")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"thread": thread,
	})
}

func (fc *ForumController) AddReply(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	threadID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid thread ID")
	}

	if _, err := fc.Forum.GetThread(uint(threadID)); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return utils.NotFound(c, "Thread not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Body == "" {
		return utils.BadRequest(c, "Reply body is required")
	}

	var user models.User
	if err := fc.DB.First(&user, userID).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	reply := models.ThreadReply{
		LessonThreadID: uint(threadID),
		UserID:         userID,
		UserName:       user.Username,
		Body:           input.Body,
	}
	if err := fc.Forum.AddReply(&reply); err != nil {
		return utils.InternalServerError(c, "Could not create reply")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reply": reply,
	})
}
