package quizRoutes

import (
	quizControllers "academia/controllers/quiz"
	"academia/middleware"
	quizValidators "academia/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

func SetupQuizRoutes(app *fiber.App) {
	nodeGroup := app.Group("/api/nodes")

	nodeGroup.Post("/:node_id/quizzes", quizValidators.NodeID(), quizValidators.CreateQuiz(), middleware.JWTMiddleware, quizControllers.CreateQuiz)

	quizGroup := app.Group("/api/quizzes")

	quizGroup.Get("/:id", quizValidators.QuizID(), middleware.JWTMiddleware, quizControllers.GetQuiz)
	quizGroup.Delete("/:id", quizValidators.QuizID(), middleware.JWTMiddleware, quizControllers.DeleteQuiz)
	quizGroup.Post("/:id/questions", quizValidators.QuizID(), quizValidators.AddQuestion(), middleware.JWTMiddleware, quizControllers.AddQuestion)
	quizGroup.Post("/:id/submit", quizValidators.QuizID(), middleware.JWTMiddleware, quizControllers.SubmitQuiz)
	quizGroup.Get("/:id/attempts", quizValidators.QuizID(), middleware.JWTMiddleware, quizControllers.GetMyAttempts)
}
