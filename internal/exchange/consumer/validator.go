package consumer

import (
	"fmt"
	"strings"

	"github.com/pratham13103/OfferLetter-Verification/internal/dates"
)

func validateEnvelope(env envelope) string {
	if env.Kind != kindCreated && env.Kind != kindGenerated {
		return fmt.Sprintf("invalid enum value: kind %q not in [%s %s]", env.Kind, kindCreated, kindGenerated)
	}

	if env.OfferLetterID <= 0 {
		return fmt.Sprintf("invalid value in field 'offer_letter_id'=%d", env.OfferLetterID)
	}

	if len(env.Payload) == 0 {
		return "required field 'payload'"
	}

	return ""
}

func validatePayload(kind string, id int64, payload letterPayload) string {
	if payload.OfferLetterID != id {
		return fmt.Sprintf("payload offer_letter_id=%d does not match envelope offer_letter_id=%d", payload.OfferLetterID, id)
	}

	if strings.TrimSpace(payload.Name) == "" {
		return "required field 'payload.name'"
	}

	if _, err := dates.ParseStored(payload.StartDate); err != nil {
		return fmt.Sprintf("invalid value in field 'payload.start_date'=%s", payload.StartDate)
	}

	if _, err := dates.ParseStored(payload.EndDate); err != nil {
		return fmt.Sprintf("invalid value in field 'payload.end_date'=%s", payload.EndDate)
	}

	if kind == kindGenerated && strings.TrimSpace(payload.FileName) == "" {
		return "required field 'payload.file_name'"
	}

	return ""
}
