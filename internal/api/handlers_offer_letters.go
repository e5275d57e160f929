package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/pratham13103/OfferLetter-Verification/internal/dates"
	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
	"github.com/pratham13103/OfferLetter-Verification/internal/letter"
	"github.com/pratham13103/OfferLetter-Verification/internal/repository/offerletter"
)

// @Summary Создать офферное письмо
// @Tags    OfferLetters
// @Accept  json
// @Produce json
// @Param   request body createOfferLetterReq true "Данные письма"
// @Success 200 {object} createResponse
// @Failure 400 {object} errorResponse "некорректный JSON, дата не в формате MM-DD-YYYY или ошибка записи"
// @Router  /create_offer_letter/ [post]
func (s *Service) createOfferLetter(ctx *fasthttp.RequestCtx) {
	var req createOfferLetterReq

	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	if err := validateCreateOfferLetter(req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	id, err := s.letters.Create(ctx, offerletter.CreateParams{
		Name:      req.Name,
		Duration:  req.Duration,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		// любая ошибка создания, включая недоступную БД, отдаётся как 400
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("Error: %w", err))
		return
	}

	s.publishCreated(ctx, id)

	writeJSON(ctx, fasthttp.StatusOK, createResponse{ID: id})
}

// @Summary Сгенерировать .docx по записи
// @Tags    OfferLetters
// @Accept  json
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param   request body generateOfferLetterReq true "Идентификатор письма"
// @Success 200 {file} file "updated_offer_letter_<name>.docx"
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "Offer letter not found"
// @Failure 500 {object} errorResponse "повреждённая дата в записи или ошибка записи файла"
// @Router  /generate_offer_letter/ [post]
func (s *Service) generateOfferLetter(ctx *fasthttp.RequestCtx) {
	var req generateOfferLetterReq

	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	if err := validateGenerateOfferLetter(req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	rec, err := s.letters.GetByID(ctx, req.OfferLetterID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrOfferLetterNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("offerLetterRepository.GetByID: %w", err))
		return
	}

	res, err := s.generator.Generate(ctx, *rec)
	if err != nil {
		if errors.Is(err, dates.ErrFormat) {
			writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("stored offer letter %d: %w", rec.ID, err))
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("generator.Generate: %w", err))
		return
	}

	if s.producer != nil {
		if err := s.producer.ProduceGenerated(ctx, *rec, res.FileName); err != nil {
			s.log.Warn().Err(err).Int64("offer_letter_id", rec.ID).Msg("producer.ProduceGenerated")
		}
	}

	ctx.Response.Header.Set("Content-Type", letter.MediaType)
	ctx.Response.Header.Set("Content-Disposition", "inline; filename="+res.FileName)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(res.Content)
}

// @Summary Список (id, name) всех писем
// @Tags    OfferLetters
// @Produce json
// @Success 200 {array} dto.OfferLetterSummary
// @Failure 404 {object} errorResponse "No offer letters found"
// @Failure 500 {object} errorResponse
// @Router  /get_offer_letter_names/ [get]
func (s *Service) listOfferLetterNames(ctx *fasthttp.RequestCtx) {
	rows, err := s.letters.ListSummaries(ctx)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrOfferLettersNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("offerLetterRepository.ListSummaries: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Все письма
// @Tags    OfferLetters
// @Produce json
// @Success 200 {array} dto.OfferLetter
// @Failure 404 {object} errorResponse "No offer letters found"
// @Failure 500 {object} errorResponse
// @Router  /offer_letters/ [get]
func (s *Service) listOfferLetters(ctx *fasthttp.RequestCtx) {
	rows, err := s.letters.List(ctx)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrOfferLettersNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("offerLetterRepository.List: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Письмо по id
// @Tags    OfferLetters
// @Produce json
// @Param   id path int true "Идентификатор письма"
// @Success 200 {object} dto.OfferLetter
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "Offer letter not found"
// @Failure 500 {object} errorResponse
// @Router  /offer_letters/{id} [get]
func (s *Service) getOfferLetter(ctx *fasthttp.RequestCtx) {
	raw, _ := ctx.UserValue("id").(string)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(ctx, fasthttp.StatusBadRequest, ErrInvalidID)
		return
	}

	row, err := s.letters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrOfferLetterNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("offerLetterRepository.GetByID: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, row)
}

// publishCreated отправляет событие created; сбой Kafka не влияет на ответ.
func (s *Service) publishCreated(ctx *fasthttp.RequestCtx, id int64) {
	if s.producer == nil {
		return
	}

	rec, err := s.letters.GetByID(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Int64("offer_letter_id", id).Msg("offerLetterRepository.GetByID")
		return
	}

	if err := s.producer.ProduceCreated(ctx, *rec); err != nil {
		s.log.Warn().Err(err).Int64("offer_letter_id", id).Msg("producer.ProduceCreated")
	}
}
