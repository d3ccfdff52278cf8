package services

import (
	"github.com/backsoul/mathquiz/pkg/models"
	"github.com/backsoul/mathquiz/pkg/quiz"
)

// roundRecorder implementa quiz.Display guardando lo que el controlador pinta
// para devolverlo a la página
type roundRecorder struct {
	question *quiz.Question
	board    quiz.Scoreboard
	feedback *quiz.Feedback
	reset    bool
	shown    int
}

func newRoundRecorder(st quiz.State) *roundRecorder {
	return &roundRecorder{
		question: st.Question,
		board:    st.Scoreboard,
	}
}

func (r *roundRecorder) ShowQuestion(q quiz.Question) {
	r.question = &q
	r.shown++
}

func (r *roundRecorder) ShowScore(board quiz.Scoreboard) {
	r.board = board
}

func (r *roundRecorder) ResetAnswer() {
	r.reset = true
}

func (r *roundRecorder) Notify(f quiz.Feedback) {
	r.feedback = &f
}

func (r *roundRecorder) response(sessionID string) *models.RoundResponse {
	view := models.RoundView{
		SessionID:   sessionID,
		Score:       r.board.Score,
		Incorrect:   r.board.Incorrect,
		ClearAnswer: r.reset,
	}

	if r.question != nil {
		view.Operand1 = r.question.Operand1
		view.Operand2 = r.question.Operand2
		view.Operator = string(r.question.Operator)
		if g, err := r.question.Operator.GameType(); err == nil {
			view.GameType = g.String()
		}
	}

	resp := &models.RoundResponse{Round: view}
	if r.feedback != nil {
		resp.Feedback = &models.Feedback{
			Correct:  r.feedback.Correct,
			Answer:   r.feedback.Answer,
			Expected: r.feedback.Expected,
			Message:  r.feedback.Message,
		}
	}
	return resp
}
