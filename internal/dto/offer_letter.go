package dto

// OfferLetter — запись офферного письма.
type OfferLetter struct {
	ID          int64   `json:"id" example:"1"`                                         // Идентификатор записи (БД)
	Name        string  `json:"name" example:"Jane Doe"`                                // Имя получателя
	Duration    string  `json:"duration" example:"3 months"`                            // Срок в свободной форме
	StartDate   string  `json:"start_date" example:"January 15, 2025"`                  // Дата начала, длинная форма
	EndDate     string  `json:"end_date" example:"April 15, 2025"`                      // Дата окончания, длинная форма
	GeneratedOn *string `json:"generated_on" example:"2025-01-20" swaggertype:"string"` // Объявлено в схеме, не заполняется
}

// OfferLetterSummary — пара (id, name) для выпадающего списка.
type OfferLetterSummary struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Jane Doe"`
}
