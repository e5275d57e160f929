package producer

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindCreated   = "created"
	KindGenerated = "generated"
)

// LetterPayload — снимок офферного письма в событии
type LetterPayload struct {
	OfferLetterID int64  `json:"offer_letter_id" example:"1"`                                      // Идентификатор записи
	Name          string `json:"name"            example:"Jane Doe"`                               // Имя получателя
	Duration      string `json:"duration"        example:"3 months"`                               // Срок
	StartDate     string `json:"start_date"      example:"January 15, 2025"`                       // Дата начала (длинная форма)
	EndDate       string `json:"end_date"        example:"April 15, 2025"`                         // Дата окончания (длинная форма)
	FileName      string `json:"file_name,omitempty" example:"updated_offer_letter_Jane_Doe.docx"` // Только для generated
}

type Envelope[T any] struct {
	Kind          string    `json:"kind"            example:"created"`                              // created | generated
	MessageID     uuid.UUID `json:"message_id"      example:"c7e06db5-4b71-4c54-9334-3f9a6e6c5d0e"` // Идентификатор события (UUID v4)
	OfferLetterID int64     `json:"offer_letter_id" example:"1"`                                    // Идентификатор записи
	Payload       T         `json:"payload"`                                                        // Полезная нагрузка
	Timestamp     time.Time `json:"timestamp"       example:"2025-01-10T09:00:00Z"`                 // Время формирования события
	Source        string    `json:"source"          example:"offer-letter-api"`                     // Сервис-источник
}
