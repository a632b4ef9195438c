package main

import (
	"academia/config"
	"academia/database"
	authRoutes "academia/routers/authRoutes"
	certificateRoutes "academia/routers/certificateRoutes"
	commentRoutes "academia/routers/commentRoutes"
	contentRoutes "academia/routers/contentRoutes"
	eventRoutes "academia/routers/eventRoutes"
	gamificationRoutes "academia/routers/gamificationRoutes"
	knowledgePathRoutes "academia/routers/knowledgePathRoutes"
	messageRoutes "academia/routers/messageRoutes"
	notificationRoutes "academia/routers/notificationRoutes"
	quizRoutes "academia/routers/quizRoutes"
	userRoutes "academia/routers/userRoutes"
	voteRoutes "academia/routers/voteRoutes"
	"academia/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	// Credentials must be allowed for cookie based auth
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.FrontendOrigin,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	knowledgePathRoutes.SetupKnowledgePathRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	gamificationRoutes.SetupGamificationRoutes(app)
	eventRoutes.SetupEventRoutes(app)
	contentRoutes.SetupContentRoutes(app)
	voteRoutes.SetupVoteRoutes(app)
	commentRoutes.SetupCommentRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	messageRoutes.SetupMessageRoutes(app)

	utils.InitializeEventReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
