package api

import (
	"strings"

	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
)

type createOfferLetterReq struct {
	Name      string `json:"name" example:"Jane Doe"`         // Имя получателя
	Duration  string `json:"duration" example:"3 months"`     // Срок в свободной форме
	StartDate string `json:"start_date" example:"01-15-2025"` // Дата начала, MM-DD-YYYY
	EndDate   string `json:"end_date" example:"04-15-2025"`   // Дата окончания, MM-DD-YYYY
}

type generateOfferLetterReq struct {
	OfferLetterID int64 `json:"offer_letter_id" example:"1"` // Идентификатор записи
}

// Формат дат проверяет хранилище при создании записи.
func validateCreateOfferLetter(req createOfferLetterReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return &dto.ValidationError{Field: "name", Err: errRequired}
	}

	if strings.TrimSpace(req.StartDate) == "" {
		return &dto.ValidationError{Field: "start_date", Err: errRequired}
	}

	if strings.TrimSpace(req.EndDate) == "" {
		return &dto.ValidationError{Field: "end_date", Err: errRequired}
	}

	return nil
}

func validateGenerateOfferLetter(req generateOfferLetterReq) error {
	if req.OfferLetterID <= 0 {
		return &dto.ValidationError{Field: "offer_letter_id", Err: errPositive}
	}

	return nil
}
