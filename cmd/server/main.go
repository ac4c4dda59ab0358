package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/campuspulse/faculty-feedback-backend/internal/database"
	"github.com/campuspulse/faculty-feedback-backend/internal/handlers"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	if err := database.Connect(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Disconnect()

	// The unique feedback index is the no-double-voting contract; refuse to
	// serve without it.
	if err := database.EnsureIndexes(); err != nil {
		log.Fatal("Failed to ensure indexes:", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: os.Getenv("FRONTEND_URL"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Routes
	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", handlers.Login)
	auth.Get("/me", handlers.AuthMiddleware, handlers.Me)

	// Protected routes
	api.Use(handlers.AuthMiddleware)

	// Student routes
	student := api.Group("/student", handlers.StudentMiddleware)
	student.Get("/assignments", handlers.GetAssignments)
	student.Post("/feedback", handlers.SubmitFeedback)

	// Faculty routes
	faculty := api.Group("/faculty", handlers.FacultyMiddleware)
	faculty.Get("/reports", handlers.GetFacultyReports)

	// Admin routes (protected by Auth + Admin middleware)
	admin := api.Group("/admin")
	admin.Use(handlers.AdminMiddleware)
	admin.Get("/analytics", handlers.GetAdminAnalytics)

	admin.Post("/questions", handlers.CreateQuestion)
	admin.Get("/questions", handlers.GetQuestions)
	admin.Put("/questions/:id", handlers.UpdateQuestion)
	admin.Delete("/questions/:id", handlers.DeleteQuestion)

	admin.Post("/students", handlers.CreateStudent)
	admin.Get("/students", handlers.GetStudents)
	admin.Delete("/students/:id", handlers.DeleteStudent)

	admin.Post("/faculties", handlers.CreateFaculty)
	admin.Get("/faculties", handlers.GetFaculties)
	admin.Delete("/faculties/:id", handlers.DeleteFaculty)

	admin.Post("/mappings/generate", handlers.GenerateMappings)
	admin.Post("/mappings", handlers.CreateMapping)
	admin.Get("/mappings", handlers.GetMappings)
	admin.Delete("/mappings/:id", handlers.DeleteMapping)

	admin.Post("/upload/students", handlers.UploadStudents)
	admin.Post("/upload/faculties", handlers.UploadFaculties)
	admin.Post("/upload/mappings", handlers.UploadMappings)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
