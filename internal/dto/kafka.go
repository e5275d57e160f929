package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// LetterEvent — событие по офферному письму, сохранённое аудит-консьюмером.
type LetterEvent struct {
	ID            int64           `json:"id"`
	MessageID     uuid.UUID       `json:"message_id"`
	Kind          string          `json:"kind"`
	OfferLetterID int64           `json:"offer_letter_id"`
	Topic         string          `json:"topic"`
	Key           string          `json:"key"`
	Partition     int             `json:"partition"`
	Offset        int64           `json:"offset"`
	Payload       json.RawMessage `json:"payload"`
	ReceivedAt    string          `json:"received_at"`
}

// KafkaDLQ — сообщение в DLQ
type KafkaDLQ struct {
	ID         int64           `json:"id"`
	Topic      string          `json:"topic"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
	Error      string          `json:"error"`
	ReceivedAt string          `json:"received_at"`
}
