package certificateController

import (
	kpController "academia/controllers/knowledgepath"
	"academia/database"
	"academia/middleware"
	"academia/models"
	kpModels "academia/models/knowledgepath"
	"academia/utils"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequestCertificate opens a PENDING certificate request for a completed path.
// A non-cancelled request for the same (user, path) blocks a new one; a
// cancelled request does not.
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	pathID := c.Locals("pathID").(int)

	db := database.Database.Db

	var path kpModels.KnowledgePath
	if err := db.Where("id = ? AND is_deleted = ?", pathID, false).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	completed, err := kpController.IsKnowledgePathCompleted(db, userID, path)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check path completion!", nil)
	}
	if !completed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the knowledge path before requesting a certificate!", nil)
	}

	// Any non-cancelled request blocks a duplicate
	var existing kpModels.CertificateRequest
	if err := db.Where("user_id = ? AND knowledge_path_id = ? AND status != ? AND is_deleted = ?",
		userID, pathID, kpModels.StatusCancelled, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An active certificate request already exists for this knowledge path!", nil)
	}

	reqData := new(struct {
		Notes string `json:"notes"`
	})
	c.BodyParser(reqData) // notes are optional, body may be empty

	request := kpModels.CertificateRequest{
		UserID:          userID,
		KnowledgePathID: uint(pathID),
		Status:          kpModels.StatusPending,
		Notes:           reqData.Notes,
		RequestedAt:     time.Now(),
	}

	if err := db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit certificate request!", nil)
	}

	// Notify the path author
	notification := models.Notification{
		UserID:      path.AuthorID,
		ActorID:     userID,
		Verb:        models.VerbCertificateRequest,
		SubjectKind: models.SubjectKnowledgePath,
		SubjectID:   path.ID,
		Message:     fmt.Sprintf("%s requested a certificate for \"%s\"", user.Name, path.Title),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error creating certificate request notification: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", request)
}

// GetRequestStatus returns the latest request for (user, path)
func GetRequestStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pathID := c.Locals("pathID").(int)

	var request kpModels.CertificateRequest
	if err := database.Database.Db.Where("user_id = ? AND knowledge_path_id = ? AND is_deleted = ?", userID, pathID, false).
		Order("created_at desc").First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No certificate request found for this knowledge path!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request fetched successfully!", request)
}

// GetCertificateRequests lists requests involving the current user, either as
// requester or as path author. Cancelled requests are excluded by default.
func GetCertificateRequests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var authoredPathIDs []uint
	db.Model(&kpModels.KnowledgePath{}).Where("author_id = ? AND is_deleted = ?", userID, false).
		Pluck("id", &authoredPathIDs)

	query := db.Where("is_deleted = ? AND status != ?", false, kpModels.StatusCancelled)
	if len(authoredPathIDs) > 0 {
		query = query.Where("user_id = ? OR knowledge_path_id IN ?", userID, authoredPathIDs)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	var requests []kpModels.CertificateRequest
	if err := query.Order("created_at desc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate requests fetched successfully!", fiber.Map{
		"requests": requests,
		"total":    len(requests),
	})
}

// ApproveCertificateRequest approves a request (path author only), issuing the
// certificate and its template exactly once
func ApproveCertificateRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)

	db := database.Database.Db

	var request kpModels.CertificateRequest
	if err := db.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	var path kpModels.KnowledgePath
	if err := db.Where("id = ?", request.KnowledgePathID).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	if path.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the path author can approve certificate requests!", nil)
	}

	if request.Status == kpModels.StatusCancelled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cancelled requests cannot be approved!", nil)
	}

	reqData := new(struct {
		Note string `json:"note"`
	})
	c.BodyParser(reqData)

	now := time.Now()
	request.Status = kpModels.StatusApproved
	if reqData.Note != "" {
		request.Notes = reqData.Note
	}
	request.RejectionReason = ""
	request.DecidedAt = &now
	request.DecidedBy = &userID

	if err := db.Save(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate request!", nil)
	}

	// Template and certificate are created once; re-approval after a
	// rejection reuses the existing rows
	var template kpModels.CertificateTemplate
	err := db.Where("knowledge_path_id = ? AND is_deleted = ?", path.ID, false).First(&template).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load certificate template!", nil)
		}
		template = kpModels.CertificateTemplate{
			KnowledgePathID: path.ID,
			Name:            path.Title + " Certificate",
			Note:            reqData.Note,
		}
		if err := db.Create(&template).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create certificate template!", nil)
		}
	}

	var certificate kpModels.Certificate
	err = db.Where("user_id = ? AND knowledge_path_id = ? AND is_deleted = ?", request.UserID, path.ID, false).
		First(&certificate).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load certificate!", nil)
		}
		certificate = kpModels.Certificate{
			UserID:            request.UserID,
			KnowledgePathID:   path.ID,
			TemplateID:        template.ID,
			CertificateNumber: utils.GenerateCertificateNumber(),
			IssuedAt:          time.Now(),
		}
		if err := db.Create(&certificate).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
		}
	}

	notifyDecision(db, request, path, userID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request approved!", fiber.Map{
		"request":     request,
		"certificate": certificate,
	})
}

// RejectCertificateRequest rejects a request with a reason (path author only).
// Rejected requests stay approvable later.
func RejectCertificateRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)

	db := database.Database.Db

	var request kpModels.CertificateRequest
	if err := db.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	var path kpModels.KnowledgePath
	if err := db.Where("id = ?", request.KnowledgePathID).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	if path.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the path author can reject certificate requests!", nil)
	}

	if request.Status == kpModels.StatusCancelled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cancelled requests cannot be rejected!", nil)
	}

	reqData, ok := c.Locals("validatedRejection").(*struct {
		RejectionReason string `json:"rejection_reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	now := time.Now()
	request.Status = kpModels.StatusRejected
	request.RejectionReason = reqData.RejectionReason
	request.DecidedAt = &now
	request.DecidedBy = &userID

	if err := db.Save(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject certificate request!", nil)
	}

	notifyDecision(db, request, path, userID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request rejected!", request)
}

// CancelCertificateRequest cancels a request (requester only). Terminal state;
// the user may request again afterwards.
func CancelCertificateRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)

	db := database.Database.Db

	var request kpModels.CertificateRequest
	if err := db.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	if request.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the requester can cancel this request!", nil)
	}

	if request.Status == kpModels.StatusApproved {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Approved requests cannot be cancelled!", nil)
	}

	request.Status = kpModels.StatusCancelled

	if err := db.Save(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request cancelled!", request)
}

// GetMyCertificates lists certificates issued to the current user
func GetMyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type CertificateWithPath struct {
		kpModels.Certificate
		PathTitle string `json:"path_title"`
	}

	var certificates []kpModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithPath, len(certificates))
	for i, cert := range certificates {
		var path kpModels.KnowledgePath
		database.Database.Db.Where("id = ?", cert.KnowledgePathID).First(&path)
		result[i] = CertificateWithPath{
			Certificate: cert,
			PathTitle:   path.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// notifyDecision records an in-app notification and emails the requester
func notifyDecision(db *gorm.DB, request kpModels.CertificateRequest, path kpModels.KnowledgePath, actorID uint) {
	notification := models.Notification{
		UserID:      request.UserID,
		ActorID:     actorID,
		Verb:        models.VerbCertificateDecided,
		SubjectKind: models.SubjectKnowledgePath,
		SubjectID:   path.ID,
		Message:     fmt.Sprintf("Your certificate request for \"%s\" was %s", path.Title, request.Status),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error creating certificate decision notification: %v", err)
	}

	var requester models.User
	if err := db.Where("id = ?", request.UserID).First(&requester).Error; err == nil {
		utils.SendCertificateDecisionEmail(requester.Email, requester.Name, path.Title, request.Status, request.RejectionReason)
	}
}
