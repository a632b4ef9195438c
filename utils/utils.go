package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateCertificateNumber generates a unique certificate number
func GenerateCertificateNumber() string {
	return "AB-CERT-" + strings.ToUpper(uuid.NewString())
}

// Paginate computes the offset for a 1-based page number
func Paginate(page, limit int) (offset int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return (page - 1) * limit
}
