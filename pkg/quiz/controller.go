package quiz

import (
	"fmt"
	"math/rand/v2"
)

// ActionSubmit acción del botón de enviar respuesta
const ActionSubmit = "submit"

const (
	correctMessage   = "Hey! You got it right! :D"
	incorrectMessage = "Awww... you answered %s. The correct answer was %d!"
)

// Display destino donde el controlador pinta cada ronda.
// El controlador nunca lee de vuelta lo que escribe.
type Display interface {
	ShowQuestion(q Question)
	ShowScore(board Scoreboard)
	ResetAnswer()
	Notify(f Feedback)
}

// Rand fuente de números aleatorios
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Scoreboard contadores de aciertos y fallos
type Scoreboard struct {
	Score     int `json:"score"`
	Incorrect int `json:"incorrect"`
}

// Feedback mensaje mostrado tras comprobar una respuesta
type Feedback struct {
	Correct  bool   `json:"correct"`
	Answer   string `json:"answer"`
	Expected int    `json:"expected"`
	Message  string `json:"message"`
}

// Result resultado de comprobar una respuesta
type Result struct {
	Feedback
	GameType GameType
	Previous Question
}

// State estado completo del controlador
type State struct {
	Scoreboard
	Question *Question
}

type action func(answer string) (*Result, error)

// Controller controla el ciclo pregunta, respuesta y siguiente pregunta
type Controller struct {
	display Display
	rnd     Rand
	board   Scoreboard
	current *Question
	actions map[string]action
}

// New crea un controlador con los contadores iniciales. No arranca ninguna ronda.
func New(display Display, rnd Rand, initial Scoreboard) *Controller {
	if rnd == nil {
		rnd = globalRand{}
	}

	c := &Controller{
		display: display,
		rnd:     rnd,
		board:   initial,
	}

	c.actions = map[string]action{
		ActionSubmit: c.Submit,
	}
	for _, g := range GameTypes() {
		g := g
		c.actions[g.String()] = func(string) (*Result, error) {
			return nil, c.Start(g)
		}
	}

	return c
}

// Restore reconstruye un controlador a partir de un estado guardado
func Restore(display Display, rnd Rand, st State) (*Controller, error) {
	if st.Score < 0 || st.Incorrect < 0 {
		return nil, fmt.Errorf("negative scoreboard %d/%d", st.Score, st.Incorrect)
	}

	c := New(display, rnd, st.Scoreboard)
	if st.Question != nil {
		if err := st.Question.Validate(); err != nil {
			return nil, err
		}
		q := *st.Question
		c.current = &q
	}
	return c, nil
}

// Start genera una pregunta nueva del tipo indicado y la muestra
func (c *Controller) Start(g GameType) error {
	if !g.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownGameType, g)
	}

	a := MinOperand + c.rnd.IntN(MaxOperand-MinOperand+1)
	b := MinOperand + c.rnd.IntN(MaxOperand-MinOperand+1)

	q, err := Render(g, a, b)
	if err != nil {
		return err
	}

	c.display.ResetAnswer()
	c.current = &q
	c.display.ShowQuestion(q)
	return nil
}

// Submit comprueba la respuesta contra la pregunta actual, actualiza los
// contadores y arranca otra ronda del mismo tipo
func (c *Controller) Submit(raw string) (*Result, error) {
	if c.current == nil {
		return nil, ErrNoQuestion
	}

	expected, g, err := Expected(*c.current)
	if err != nil {
		return nil, err
	}

	answer := ParseAnswer(raw)
	result := &Result{
		Feedback: Feedback{
			Correct:  answer.Matches(expected),
			Answer:   answer.String(),
			Expected: expected,
		},
		GameType: g,
		Previous: *c.current,
	}

	if result.Correct {
		result.Message = correctMessage
		c.board.Score++
	} else {
		result.Message = fmt.Sprintf(incorrectMessage, answer, expected)
		c.board.Incorrect++
	}

	c.display.Notify(result.Feedback)
	c.display.ShowScore(c.board)

	if err := c.Start(g); err != nil {
		return nil, err
	}
	return result, nil
}

// Dispatch ejecuta la acción de un botón: un tipo de juego o "submit"
func (c *Controller) Dispatch(name, answer string) (*Result, error) {
	act, ok := c.actions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGameType, name)
	}
	return act(answer)
}

// Scoreboard devuelve los contadores actuales
func (c *Controller) Scoreboard() Scoreboard {
	return c.board
}

// Current devuelve la pregunta en juego
func (c *Controller) Current() (Question, bool) {
	if c.current == nil {
		return Question{}, false
	}
	return *c.current, true
}

// State devuelve una copia del estado para guardarlo
func (c *Controller) State() State {
	st := State{Scoreboard: c.board}
	if c.current != nil {
		q := *c.current
		st.Question = &q
	}
	return st
}
