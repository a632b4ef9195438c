package knowledgePathRoutes

import (
	kpControllers "academia/controllers/knowledgepath"
	"academia/middleware"
	kpValidators "academia/validators/knowledgepath"

	"github.com/gofiber/fiber/v2"
)

func SetupKnowledgePathRoutes(app *fiber.App) {
	pathGroup := app.Group("/api/knowledge-paths")

	pathGroup.Post("", kpValidators.CreateKnowledgePath(), middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("create_knowledge_path"), kpControllers.CreateKnowledgePath)
	pathGroup.Get("", middleware.JWTMiddleware, kpControllers.GetKnowledgePaths)
	pathGroup.Get("/mine", middleware.JWTMiddleware, kpControllers.GetMyKnowledgePaths)
	pathGroup.Get("/:id", kpValidators.PathID(), middleware.JWTMiddleware, kpControllers.GetKnowledgePathDetails)
	pathGroup.Put("/:id", kpValidators.PathID(), middleware.JWTMiddleware, kpControllers.UpdateKnowledgePath)
	pathGroup.Delete("/:id", kpValidators.PathID(), middleware.JWTMiddleware, kpControllers.DeleteKnowledgePath)
	pathGroup.Get("/:id/progress", kpValidators.PathID(), middleware.JWTMiddleware, kpControllers.GetKnowledgePathProgress)
	pathGroup.Post("/:id/nodes", kpValidators.PathID(), kpValidators.CreateNode(), middleware.JWTMiddleware, kpControllers.AddNode)

	nodeGroup := app.Group("/api/nodes")

	nodeGroup.Put("/:node_id", kpValidators.NodeID(), middleware.JWTMiddleware, kpControllers.UpdateNode)
	nodeGroup.Delete("/:node_id", kpValidators.NodeID(), middleware.JWTMiddleware, kpControllers.DeleteNode)
	nodeGroup.Post("/:node_id/complete", kpValidators.NodeID(), middleware.JWTMiddleware, kpControllers.MarkNodeComplete)
}
