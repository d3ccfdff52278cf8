package handlers

import (
	"encoding/json"
	"errors"

	"github.com/backsoul/mathquiz/pkg/models"
	"github.com/backsoul/mathquiz/pkg/quiz"
	"github.com/valyala/fasthttp"
)

// respondWithJSON envía una respuesta JSON
func respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(statusCode)

	jsonData, err := json.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"success": false, "error": "Error al serializar respuesta"}`)
		return
	}

	ctx.SetBody(jsonData)
}

// respondWithError envía una respuesta de error
func respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	respondWithJSON(ctx, statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// respondWithSuccess envía una respuesta exitosa
func respondWithSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	respondWithJSON(ctx, fasthttp.StatusOK, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// statusFor traduce los errores del servicio a códigos HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrSessionNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, models.ErrInvalidRequest),
		errors.Is(err, quiz.ErrUnknownGameType):
		return fasthttp.StatusBadRequest
	case errors.Is(err, quiz.ErrNoQuestion):
		return fasthttp.StatusConflict
	default:
		return fasthttp.StatusInternalServerError
	}
}
