package certificateRoutes

import (
	certificateControllers "academia/controllers/certificate"
	"academia/middleware"
	certificateValidators "academia/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

func SetupCertificateRoutes(app *fiber.App) {
	requestGroup := app.Group("/api/certificate-requests")

	requestGroup.Post("/:path_id", certificateValidators.PathID(), middleware.JWTMiddleware, certificateControllers.RequestCertificate)
	requestGroup.Get("/:path_id/status", certificateValidators.PathID(), middleware.JWTMiddleware, certificateControllers.GetRequestStatus)
	requestGroup.Get("", middleware.JWTMiddleware, certificateControllers.GetCertificateRequests)
	requestGroup.Patch("/:request_id/approve", certificateValidators.RequestID(), middleware.JWTMiddleware, certificateControllers.ApproveCertificateRequest)
	requestGroup.Patch("/:request_id/reject", certificateValidators.RequestID(), certificateValidators.RejectRequest(), middleware.JWTMiddleware, certificateControllers.RejectCertificateRequest)
	requestGroup.Patch("/:request_id/cancel", certificateValidators.RequestID(), middleware.JWTMiddleware, certificateControllers.CancelCertificateRequest)

	certificateGroup := app.Group("/api/certificates")

	certificateGroup.Get("/mine", middleware.JWTMiddleware, certificateControllers.GetMyCertificates)
}
