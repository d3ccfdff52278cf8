package models

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidRequest  = errors.New("invalid request")
)

// APIResponse estructura estándar para respuestas de API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SessionSnapshot estado guardado de la página de un jugador
type SessionSnapshot struct {
	ID           string    `json:"id"`
	Score        int       `json:"score"`
	Incorrect    int       `json:"incorrect"`
	Operand1     int       `json:"operand1"`
	Operand2     int       `json:"operand2"`
	Operator     string    `json:"operator"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// RoundView contenido de los huecos de la página
type RoundView struct {
	SessionID   string `json:"sessionId"`
	Operand1    int    `json:"operand1"`
	Operand2    int    `json:"operand2"`
	Operator    string `json:"operator"`
	GameType    string `json:"gameType"`
	Score       int    `json:"score"`
	Incorrect   int    `json:"incorrect"`
	ClearAnswer bool   `json:"clearAnswer"`
}

// Feedback resultado de la última respuesta
type Feedback struct {
	Correct  bool   `json:"correct"`
	Answer   string `json:"answer"`
	Expected int    `json:"expected"`
	Message  string `json:"message"`
}

// RoundResponse respuesta de cada acción del jugador
type RoundResponse struct {
	Round    RoundView `json:"round"`
	Feedback *Feedback `json:"feedback,omitempty"`
}

// SessionCreateRequest request para crear sesión con los contadores de la página
type SessionCreateRequest struct {
	Score     int    `json:"score" validate:"min=0"`
	Incorrect int    `json:"incorrect" validate:"min=0"`
	GameType  string `json:"gameType" validate:"omitempty,oneof=addition subtract multiply division"`
}

// StartRequest request para cambiar de tipo de juego
type StartRequest struct {
	GameType string `json:"gameType"`
}

// AnswerRequest request con la respuesta escrita
type AnswerRequest struct {
	Answer string `json:"answer" validate:"max=64"`
}

// ActionMessage mensaje que la página envía por WebSocket
type ActionMessage struct {
	Action string `json:"action"`
	Answer string `json:"answer,omitempty"`
}
