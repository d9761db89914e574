package routes

import (
	"devoops/backend/config"
	"devoops/backend/controllers"
	"devoops/backend/middleware"
	"devoops/backend/stores"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	exerciseStore := stores.NewExerciseStore(db)
	attemptStore := stores.NewAttemptStore(db)
	progressStore := stores.NewProgressStore(db)
	catalogStore := stores.NewCatalogStore(db)
	forumStore := stores.NewForumStore(db)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	authMiddleware := middleware.AuthMiddleware(cfg)

	// Catalog routes (public)
	coursesController := controllers.NewCoursesController(catalogStore, progressStore, cfg)
	app.Get("/api/courses", coursesController.ListCourses)
	app.Get("/api/courses/:id", coursesController.GetCourseDetails)
	app.Get("/api/technologies/:id", coursesController.GetTechnology)
	app.Get("/api/roadmap", coursesController.GetRoadmap)
	app.Get("/api/search", coursesController.Search)

	// Lesson and progress routes
	progressController := controllers.NewProgressController(catalogStore, progressStore, cfg)
	app.Get("/api/lessons/:id", authMiddleware, coursesController.GetLessonDetails)
	app.Post("/api/lessons/:id/complete", authMiddleware, progressController.MarkLessonComplete)
	app.Get("/api/courses/:id/progress", authMiddleware, progressController.GetCourseProgress)
	app.Get("/api/dashboard", authMiddleware, progressController.GetDashboard)

	// Exercise routes
	exercisesController := controllers.NewExercisesController(exerciseStore, attemptStore, cfg)
	exercises := app.Group("/api/exercises", authMiddleware)
	exercises.Get("/:id", exercisesController.GetExercise)
	exercises.Post("/:id/validate", exercisesController.SubmitSolution)
	exercises.Post("/:id/quiz", exercisesController.SubmitQuizAnswer)

	// Discussion routes
	forumController := controllers.NewForumController(db, forumStore, cfg)
	app.Get("/api/lessons/:id/threads", authMiddleware, forumController.GetLessonThreads)
	app.Post("/api/lessons/:id/threads", authMiddleware, forumController.CreateThread)
	app.Post("/api/threads/:id/replies", authMiddleware, forumController.AddReply)
}
