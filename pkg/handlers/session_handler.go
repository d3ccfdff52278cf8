package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/backsoul/mathquiz/pkg/models"
	"github.com/backsoul/mathquiz/pkg/services"
	websocketHub "github.com/backsoul/mathquiz/pkg/websocket"
	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// SessionHandler maneja las peticiones HTTP y WebSocket de la página
type SessionHandler struct {
	sessionService *services.SessionService
	hub            *websocketHub.Hub
	limiter        *SessionLimiter
	log            *zap.Logger
}

// NewSessionHandler crea una nueva instancia del handler de sesiones
func NewSessionHandler(sessionService *services.SessionService, hub *websocketHub.Hub, limiter *SessionLimiter, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		hub:            hub,
		limiter:        limiter,
		log:            log,
	}
}

var upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true // Permitir conexiones desde cualquier origen en desarrollo
	},
}

// CreateSession maneja POST /api/sessions
func (h *SessionHandler) CreateSession(ctx *fasthttp.RequestCtx) {
	var request models.SessionCreateRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &request); err != nil {
			respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
			return
		}
	}

	resp, err := h.sessionService.CreateSession(ctx, request)
	if err != nil {
		h.fail(ctx, "Error creando sesión", err)
		return
	}

	respondWithSuccess(ctx, resp, "Sesión creada exitosamente")
}

// GetSession maneja GET /api/sessions/{id}
func (h *SessionHandler) GetSession(ctx *fasthttp.RequestCtx) {
	sessionID := ctx.UserValue("id").(string)

	resp, err := h.sessionService.GetRound(ctx, sessionID)
	if err != nil {
		h.fail(ctx, "Sesión no encontrada", err)
		return
	}

	respondWithSuccess(ctx, resp, "Sesión obtenida exitosamente")
}

// StartGame maneja POST /api/sessions/{id}/start
func (h *SessionHandler) StartGame(ctx *fasthttp.RequestCtx) {
	sessionID := ctx.UserValue("id").(string)

	var request models.StartRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
		return
	}

	if !h.limiter.Allow(sessionID) {
		respondWithError(ctx, fasthttp.StatusTooManyRequests, "Demasiadas peticiones")
		return
	}

	resp, err := h.sessionService.StartGame(ctx, sessionID, request.GameType)
	if err != nil {
		h.fail(ctx, "Error iniciando juego", err)
		return
	}

	h.hub.Broadcast(sessionID, websocketHub.TypeRound, resp)
	respondWithSuccess(ctx, resp, "Nueva pregunta generada")
}

// SubmitAnswer maneja POST /api/sessions/{id}/answer
func (h *SessionHandler) SubmitAnswer(ctx *fasthttp.RequestCtx) {
	sessionID := ctx.UserValue("id").(string)

	var request models.AnswerRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
		return
	}

	if !h.limiter.Allow(sessionID) {
		respondWithError(ctx, fasthttp.StatusTooManyRequests, "Demasiadas peticiones")
		return
	}

	resp, err := h.sessionService.SubmitAnswer(ctx, sessionID, request.Answer)
	if err != nil {
		h.fail(ctx, "Error comprobando respuesta", err)
		return
	}

	h.hub.Broadcast(sessionID, websocketHub.TypeRound, resp)
	respondWithSuccess(ctx, resp, "Respuesta comprobada")
}

// FinishSession maneja POST /api/sessions/{id}/finish
func (h *SessionHandler) FinishSession(ctx *fasthttp.RequestCtx) {
	sessionID := ctx.UserValue("id").(string)

	if err := h.sessionService.FinishSession(ctx, sessionID); err != nil {
		h.fail(ctx, "Error terminando sesión", err)
		return
	}

	respondWithSuccess(ctx, nil, "Sesión terminada")
}

// HealthCheck maneja GET /api/health
func (h *SessionHandler) HealthCheck(ctx *fasthttp.RequestCtx) {
	if err := h.sessionService.HealthCheck(ctx); err != nil {
		respondWithError(ctx, fasthttp.StatusServiceUnavailable, fmt.Sprintf("Servicio no disponible: %v", err))
		return
	}

	respondWithSuccess(ctx, map[string]interface{}{
		"status": "healthy",
		"store":  "connected",
	}, "Servicio funcionando correctamente")
}

// HandleWebSocket maneja GET /ws?session={id}
func (h *SessionHandler) HandleWebSocket(ctx *fasthttp.RequestCtx) {
	sessionID := string(ctx.QueryArgs().Peek("session"))
	if sessionID == "" {
		respondWithError(ctx, fasthttp.StatusBadRequest, "Parámetro 'session' es requerido")
		return
	}

	round, err := h.sessionService.GetRound(ctx, sessionID)
	if err != nil {
		h.fail(ctx, "Sesión no encontrada", err)
		return
	}

	err = upgrader.Upgrade(ctx, func(ws *websocket.Conn) {
		defer ws.Close()

		h.hub.Register(sessionID, ws)
		defer h.hub.Unregister(sessionID, ws)

		// Enviar la ronda actual al conectarse
		h.hub.Send(sessionID, ws, websocketHub.TypeRound, round)

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				h.log.Debug("WebSocket cerrado", zap.String("session_id", sessionID), zap.Error(err))
				return
			}
			h.handleAction(sessionID, ws, data)
		}
	})

	if err != nil {
		h.log.Error("Error upgrading to WebSocket", zap.Error(err))
		ctx.Error("Error upgrading to WebSocket", fasthttp.StatusInternalServerError)
	}
}

func (h *SessionHandler) handleAction(sessionID string, ws websocketHub.Conn, data []byte) {
	var msg models.ActionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.hub.Send(sessionID, ws, websocketHub.TypeError, models.APIResponse{Error: "JSON inválido"})
		return
	}

	if !h.limiter.Allow(sessionID) {
		h.hub.Send(sessionID, ws, websocketHub.TypeError, models.APIResponse{Error: "Demasiadas peticiones"})
		return
	}

	resp, err := h.sessionService.Dispatch(context.Background(), sessionID, msg.Action, msg.Answer)
	if err != nil {
		h.hub.Send(sessionID, ws, websocketHub.TypeError, models.APIResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(sessionID, websocketHub.TypeRound, resp)
}

func (h *SessionHandler) fail(ctx *fasthttp.RequestCtx, message string, err error) {
	status := statusFor(err)
	if status >= fasthttp.StatusInternalServerError {
		h.log.Error("❌ "+message, zap.Error(err))
	}
	respondWithError(ctx, status, fmt.Sprintf("%s: %v", message, err))
}
