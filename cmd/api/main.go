package main

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/peer_tutor/ai"
	config "github.com/anjiri1684/peer_tutor/configs"
	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/jobs"
	"github.com/anjiri1684/peer_tutor/routes"
	"github.com/anjiri1684/peer_tutor/services"
	"github.com/anjiri1684/peer_tutor/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	database.SeedBadges()

	var aiClient ai.Client
	if projectID := config.Config("GCP_PROJECT_ID"); projectID != "" {
		client, err := ai.NewGeminiClient(
			context.Background(),
			projectID,
			config.Config("GCP_LOCATION"),
			config.Config("GEMINI_MODEL"),
			config.Config("GOOGLE_APPLICATION_CREDENTIALS"),
		)
		if err != nil {
			log.Printf("⚠️ Failed to initialize Gemini client, recommendations run rule-based only: %v", err)
		} else {
			aiClient = client
			defer client.Close()
			log.Println("✅ Gemini client initialized successfully.")
		}
	} else {
		log.Println("⚠️ GCP_PROJECT_ID not set, recommendations run rule-based only.")
	}
	engine := services.NewRecommendationEngine(aiClient)

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.SendSessionReminders)
	go c.Start()
	log.Println("✅ Cron job for session reminders scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Peer Tutor",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Peer Tutor API",
		})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.TutorRoutes(app)
	routes.SessionRoutes(app)
	routes.RecommendationRoutes(app, engine)
	routes.NotificationRoutes(app)
	routes.UploadRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
