package api

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

type ctxKey string

const requestIDKey ctxKey = "request-id"

func RecoveryMiddleware(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		defer func() {
			if rvr := recover(); rvr != nil {
				log.Error().
					Interface("panic", rvr).
					Str("method", string(ctx.Method())).
					Str("url", ctx.URI().String()).
					Str("remote_addr", ctx.RemoteAddr().String()).
					Str("stack_trace", string(debug.Stack())).
					Msg("Recovered from panic")

				writeError(ctx, fasthttp.StatusInternalServerError, ErrInternal)
			}
		}()

		next(ctx)
	}
}

// LoggingMiddleware логирует каждый запрос с включением request_id.
func LoggingMiddleware(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		requestID := string(ctx.Request.Header.Peek("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx.SetUserValue(string(requestIDKey), requestID)
		ctx.SetUserValue("traceContext", context.WithValue(context.Background(), requestIDKey, requestID))
		ctx.Response.Header.Set("X-Request-ID", requestID)

		begin := time.Now()
		next(ctx)

		log.Info().
			Str("request_id", requestID).
			Bytes("method", ctx.Method()).
			Str("url", ctx.URI().String()).
			Int("status", ctx.Response.StatusCode()).
			Dur("latency", time.Since(begin)).
			Msg("Completed request")
	}
}

// CORS разрешает запросы только с одного origin, с передачей cookies.
func CORS(allowedOrigin string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			origin := string(ctx.Request.Header.Peek("Origin"))
			if origin != "" && origin == allowedOrigin {
				ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
				ctx.Response.Header.Set("Access-Control-Allow-Credentials", "true")
				ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
				ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				ctx.Response.Header.Set("Access-Control-Expose-Headers", "Content-Disposition")
				ctx.Response.Header.Add("Vary", "Origin")
			}

			if ctx.IsOptions() {
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}

			next(ctx)
		}
	}
}
