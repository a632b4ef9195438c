package eventRoutes

import (
	eventControllers "academia/controllers/event"
	"academia/middleware"
	eventValidators "academia/validators/event"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App) {
	eventGroup := app.Group("/api/events")

	eventGroup.Post("", eventValidators.CreateEvent(), middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("create_event"), eventControllers.CreateEvent)
	eventGroup.Get("", middleware.JWTMiddleware, eventControllers.GetEvents)
	eventGroup.Get("/registrations/mine", middleware.JWTMiddleware, eventControllers.GetMyRegistrations)
	eventGroup.Get("/:id", eventValidators.EventID(), middleware.JWTMiddleware, eventControllers.GetEventDetails)
	eventGroup.Put("/:id", eventValidators.EventID(), eventValidators.CreateEvent(), middleware.JWTMiddleware, eventControllers.UpdateEvent)
	eventGroup.Delete("/:id", eventValidators.EventID(), middleware.JWTMiddleware, eventControllers.DeleteEvent)

	eventGroup.Post("/:id/register", eventValidators.EventID(), middleware.JWTMiddleware, eventControllers.RegisterForEvent)
	eventGroup.Delete("/:id/register", eventValidators.EventID(), middleware.JWTMiddleware, eventControllers.CancelRegistration)
	eventGroup.Get("/:id/participants", eventValidators.EventID(), middleware.JWTMiddleware, eventControllers.GetEventParticipants)
	eventGroup.Patch("/:id/registrations/:reg_id/payment", eventValidators.EventID(), eventValidators.UpdatePaymentStatus(), middleware.JWTMiddleware, eventControllers.UpdatePaymentStatus)
}
