package api

import (
	"fmt"
	"strconv"

	"github.com/valyala/fasthttp"
)

// @Summary Проверка здоровья сервиса
// @Tags    Admin
// @Success 200 {object} okResponse
// @Router  /health [get]
func (s *Service) healthHandler(ctx *fasthttp.RequestCtx) {
	ok(ctx, "OK")
}

// @Summary События по офферным письмам (аудит)
// @Tags    Events
// @Produce json
// @Param   limit  query int false "Лимит"   default(50)
// @Param   offset query int false "Смещение" default(0)
// @Success 200 {object} listResponse
// @Failure 501 {object} errorResponse "Kafka не настроена"
// @Failure 500 {object} errorResponse
// @Router  /events [get]
func (s *Service) listEvents(ctx *fasthttp.RequestCtx) {
	if s.events == nil {
		writeError(ctx, fasthttp.StatusNotImplemented, ErrEventsDisabled)
		return
	}

	limit, offset := parseLO(ctx)

	rows, err := s.events.ListEvents(ctx, limit, offset)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("eventsRepository.ListEvents: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, listResponse{Items: rows, Limit: limit, Offset: offset})
}

// @Summary Сообщения DLQ
// @Tags    Events
// @Produce json
// @Param   limit  query int false "Лимит"   default(50)
// @Param   offset query int false "Смещение" default(0)
// @Success 200 {object} listResponse
// @Failure 501 {object} errorResponse "Kafka не настроена"
// @Failure 500 {object} errorResponse
// @Router  /dlq [get]
func (s *Service) listDLQ(ctx *fasthttp.RequestCtx) {
	if s.events == nil {
		writeError(ctx, fasthttp.StatusNotImplemented, ErrEventsDisabled)
		return
	}

	limit, offset := parseLO(ctx)

	rows, err := s.events.ListDLQ(ctx, limit, offset)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("eventsRepository.ListDLQ: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, listResponse{Items: rows, Limit: limit, Offset: offset})
}

func parseLO(ctx *fasthttp.RequestCtx) (int, int) {
	q := ctx.URI().QueryArgs()
	limit := 50
	offset := 0

	if v, err := strconv.Atoi(string(q.Peek("limit"))); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	if v, err := strconv.Atoi(string(q.Peek("offset"))); err == nil && v >= 0 {
		offset = v
	}

	return limit, offset
}
