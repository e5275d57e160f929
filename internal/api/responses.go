package api

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"
)

var (
	ErrOfferLetterNotFound  = errors.New("Offer letter not found")
	ErrOfferLettersNotFound = errors.New("No offer letters found")
	ErrInvalidID            = errors.New("invalid value in field 'id'")
	ErrInternal             = errors.New("Internal Server Error")
	ErrEventsDisabled       = errors.New("события выключены: kafka.bootstrap не задан")

	errRequired = errors.New("field required")
	errPositive = errors.New("must be a positive integer")
)

type okResponse struct {
	Status string `json:"status" example:"ok"`
	Msg    string `json:"msg" example:"Готово"`
}

type createResponse struct {
	ID int64 `json:"id" example:"1"`
}

type listResponse struct {
	Items  any `json:"items"`
	Limit  int `json:"limit" example:"50"`
	Offset int `json:"offset" example:"0"`
}

// errorResponse дублирует текст в detail для совместимости со старым фронтендом.
type errorResponse struct {
	Code    string `json:"code" example:"Not Found"`
	Message string `json:"message" example:"Offer letter not found"`
	Detail  string `json:"detail" example:"Offer letter not found"`
}

func writeJSON(ctx *fasthttp.RequestCtx, statusCode int, body any) {
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.SetStatusCode(statusCode)

	_ = json.NewEncoder(ctx).Encode(body)
}

func ok(ctx *fasthttp.RequestCtx, msg string) {
	writeJSON(ctx, fasthttp.StatusOK, okResponse{Status: "ok", Msg: msg})
}

func writeError(ctx *fasthttp.RequestCtx, httpStatus int, err error) {
	ctx.Response.ResetBody()
	writeJSON(ctx, httpStatus, errorResponse{
		Code:    fasthttp.StatusMessage(httpStatus),
		Message: err.Error(),
		Detail:  err.Error(),
	})
}
