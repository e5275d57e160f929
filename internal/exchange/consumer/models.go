package consumer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	kindCreated   = "created"
	kindGenerated = "generated"
)

type envelope struct {
	Kind          string          `json:"kind"`
	MessageID     uuid.UUID       `json:"message_id"`
	OfferLetterID int64           `json:"offer_letter_id"`
	Payload       json.RawMessage `json:"payload"`
	Timestamp     time.Time       `json:"timestamp"`
	Source        string          `json:"source"`
}

type letterPayload struct {
	OfferLetterID int64  `json:"offer_letter_id"`
	Name          string `json:"name"`
	Duration      string `json:"duration"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	FileName      string `json:"file_name"`
}
