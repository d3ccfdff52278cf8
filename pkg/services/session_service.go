package services

//go:generate mockgen -source=session_service.go -destination=mock/store_mock.go -package=mock_services

import (
	"context"
	"fmt"
	"time"

	"github.com/backsoul/mathquiz/pkg/metrics"
	"github.com/backsoul/mathquiz/pkg/models"
	"github.com/backsoul/mathquiz/pkg/quiz"
	"github.com/backsoul/mathquiz/pkg/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore almacenamiento de las sesiones
type SessionStore interface {
	SaveSession(ctx context.Context, session *models.SessionSnapshot, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*models.SessionSnapshot, error)
	DeleteSession(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error
}

// SessionService ejecuta el quiz de cada página abierta
type SessionService struct {
	store SessionStore
	ttl   time.Duration
	rnd   quiz.Rand
	log   *zap.Logger
	locks *sessionLocks
	now   func() time.Time
}

// NewSessionService crea el servicio. rnd puede ser nil.
func NewSessionService(store SessionStore, ttl time.Duration, rnd quiz.Rand, log *zap.Logger) *SessionService {
	return &SessionService{
		store: store,
		ttl:   ttl,
		rnd:   rnd,
		log:   log,
		locks: newSessionLocks(),
		now:   time.Now,
	}
}

// CreateSession crea la sesión de una página nueva y arranca la primera ronda
func (s *SessionService) CreateSession(ctx context.Context, req models.SessionCreateRequest) (*models.RoundResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}

	gameType := quiz.Addition
	if req.GameType != "" {
		g, err := quiz.ParseGameType(req.GameType)
		if err != nil {
			return nil, err
		}
		gameType = g
	}

	initial := quiz.Scoreboard{Score: req.Score, Incorrect: req.Incorrect}
	recorder := newRoundRecorder(quiz.State{Scoreboard: initial})
	c := quiz.New(recorder, s.rnd, initial)
	if err := c.Start(gameType); err != nil {
		return nil, err
	}

	now := s.now()
	snap := &models.SessionSnapshot{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	applyState(snap, c.State())
	snap.LastActivity = now

	if err := s.store.SaveSession(ctx, snap, s.ttl); err != nil {
		return nil, fmt.Errorf("error guardando sesión: %w", err)
	}

	metrics.RoundsStarted.WithLabelValues(gameType.String()).Inc()
	s.log.Info("✅ Nueva sesión creada",
		zap.String("session_id", snap.ID),
		zap.String("game_type", gameType.String()),
	)

	return recorder.response(snap.ID), nil
}

// GetRound devuelve la ronda actual sin modificarla
func (s *SessionService) GetRound(ctx context.Context, id string) (*models.RoundResponse, error) {
	snap, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	st, err := snapshotState(snap)
	if err != nil {
		return nil, err
	}
	return newRoundRecorder(st).response(snap.ID), nil
}

// StartGame cambia al tipo de juego indicado con una pregunta nueva
func (s *SessionService) StartGame(ctx context.Context, id, gameType string) (*models.RoundResponse, error) {
	// solo los cuatro tipos de juego, nunca submit
	g, err := quiz.ParseGameType(gameType)
	if err != nil {
		return nil, err
	}
	return s.Dispatch(ctx, id, g.String(), "")
}

// SubmitAnswer comprueba la respuesta escrita
func (s *SessionService) SubmitAnswer(ctx context.Context, id, answer string) (*models.RoundResponse, error) {
	return s.Dispatch(ctx, id, quiz.ActionSubmit, answer)
}

// Dispatch ejecuta una acción de la página sobre la sesión. Si la acción
// falla la sesión guardada no cambia.
func (s *SessionService) Dispatch(ctx context.Context, id, action, answer string) (*models.RoundResponse, error) {
	if action == quiz.ActionSubmit {
		if err := validator.ValidateStruct(models.AnswerRequest{Answer: answer}); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
		}
	}

	unlock := s.locks.lock(id)
	defer unlock()

	snap, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	st, err := snapshotState(snap)
	if err != nil {
		return nil, err
	}

	recorder := newRoundRecorder(st)
	c, err := quiz.Restore(recorder, s.rnd, st)
	if err != nil {
		return nil, fmt.Errorf("sesión %s corrupta: %w", id, err)
	}

	result, err := c.Dispatch(action, answer)
	if err != nil {
		s.log.Warn("⚠️ Acción rechazada",
			zap.String("session_id", id),
			zap.String("action", action),
			zap.Error(err),
		)
		return nil, err
	}

	applyState(snap, c.State())
	snap.LastActivity = s.now()

	if err := s.store.SaveSession(ctx, snap, s.ttl); err != nil {
		return nil, fmt.Errorf("error guardando sesión: %w", err)
	}

	if result != nil {
		metrics.ObserveAnswer(result.GameType.String(), result.Correct)
		s.log.Debug("📝 Respuesta comprobada",
			zap.String("session_id", id),
			zap.String("question", result.Previous.String()),
			zap.String("answer", result.Answer),
			zap.Bool("correct", result.Correct),
		)
	}
	if q, ok := c.Current(); ok && recorder.shown > 0 {
		if g, err := q.Operator.GameType(); err == nil {
			metrics.RoundsStarted.WithLabelValues(g.String()).Inc()
		}
	}

	return recorder.response(id), nil
}

// FinishSession elimina la sesión al cerrar la página
func (s *SessionService) FinishSession(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.store.DeleteSession(ctx, id); err != nil {
		return err
	}

	s.log.Info("🏁 Sesión terminada", zap.String("session_id", id))
	return nil
}

// HealthCheck verifica que el almacenamiento esté funcionando
func (s *SessionService) HealthCheck(ctx context.Context) error {
	if err := s.store.HealthCheck(ctx); err != nil {
		return fmt.Errorf("error en health check del almacenamiento: %w", err)
	}
	return nil
}

func snapshotState(snap *models.SessionSnapshot) (quiz.State, error) {
	st := quiz.State{
		Scoreboard: quiz.Scoreboard{Score: snap.Score, Incorrect: snap.Incorrect},
	}
	if snap.Operator == "" {
		return st, nil
	}

	op, err := quiz.ParseOperator(snap.Operator)
	if err != nil {
		return quiz.State{}, err
	}
	st.Question = &quiz.Question{
		Operand1: snap.Operand1,
		Operand2: snap.Operand2,
		Operator: op,
	}
	return st, nil
}

func applyState(snap *models.SessionSnapshot, st quiz.State) {
	snap.Score = st.Score
	snap.Incorrect = st.Incorrect
	if st.Question != nil {
		snap.Operand1 = st.Question.Operand1
		snap.Operand2 = st.Question.Operand2
		snap.Operator = string(st.Question.Operator)
	}
}
