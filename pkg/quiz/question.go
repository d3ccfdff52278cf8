package quiz

import (
	"errors"
	"fmt"
)

// Rango de los operandos generados
const (
	MinOperand = 1
	MaxOperand = 25
)

var (
	ErrUnknownGameType       = errors.New("unknown game type")
	ErrUnimplementedOperator = errors.New("unimplemented operator")
	ErrInvalidQuestion       = errors.New("invalid question")
	ErrNoQuestion            = errors.New("no question in play")
)

// GameType tipo de operación que se practica
type GameType int

const (
	Addition GameType = iota + 1
	Subtract
	Multiply
	Division
)

var gameTypeNames = map[GameType]string{
	Addition: "addition",
	Subtract: "subtract",
	Multiply: "multiply",
	Division: "division",
}

// GameTypes devuelve los tipos de juego en el orden de los botones de la página
func GameTypes() []GameType {
	return []GameType{Addition, Subtract, Multiply, Division}
}

func (g GameType) String() string {
	if name, ok := gameTypeNames[g]; ok {
		return name
	}
	return fmt.Sprintf("GameType(%d)", int(g))
}

func (g GameType) Valid() bool {
	_, ok := gameTypeNames[g]
	return ok
}

// Operator devuelve el símbolo que se muestra para el tipo de juego
func (g GameType) Operator() (Operator, error) {
	switch g {
	case Addition:
		return Plus, nil
	case Subtract:
		return Minus, nil
	case Multiply:
		return Times, nil
	case Division:
		return Divide, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownGameType, g)
}

// ParseGameType convierte el valor de data-type de la página en un GameType
func ParseGameType(s string) (GameType, error) {
	for g, name := range gameTypeNames {
		if name == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownGameType, s)
}

// Operator símbolo mostrado entre los operandos
type Operator string

const (
	Plus   Operator = "+"
	Minus  Operator = "-"
	Times  Operator = "x"
	Divide Operator = "/"
)

func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case Plus, Minus, Times, Divide:
		return op, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnimplementedOperator, s)
}

// GameType devuelve el tipo de juego con el que continuar tras esta operación
func (o Operator) GameType() (GameType, error) {
	switch o {
	case Plus:
		return Addition, nil
	case Minus:
		return Subtract, nil
	case Times:
		return Multiply, nil
	case Divide:
		return Division, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnimplementedOperator, string(o))
}

// Question pregunta mostrada en pantalla
type Question struct {
	Operand1 int      `json:"operand1"`
	Operand2 int      `json:"operand2"`
	Operator Operator `json:"operator"`
}

func (q Question) String() string {
	return fmt.Sprintf("%d %s %d", q.Operand1, q.Operator, q.Operand2)
}

// Validate comprueba las garantías que Render da para cada operador.
// La división debe ser exacta y la resta no puede dar negativo.
func (q Question) Validate() error {
	if _, err := q.Operator.GameType(); err != nil {
		return err
	}
	if q.Operand1 < 0 || q.Operand2 < 0 {
		return fmt.Errorf("%w: negative operand in %s", ErrInvalidQuestion, q)
	}

	switch q.Operator {
	case Minus:
		if q.Operand1 < q.Operand2 {
			return fmt.Errorf("%w: %s has a negative result", ErrInvalidQuestion, q)
		}
	case Divide:
		if q.Operand2 == 0 {
			return fmt.Errorf("%w: %s divides by zero", ErrInvalidQuestion, q)
		}
		if q.Operand1%q.Operand2 != 0 {
			return fmt.Errorf("%w: %s is not an exact division", ErrInvalidQuestion, q)
		}
	}
	return nil
}

// Render construye la pregunta de un tipo de juego a partir de dos números
func Render(kind GameType, a, b int) (Question, error) {
	switch kind {
	case Addition:
		return Question{Operand1: a, Operand2: b, Operator: Plus}, nil
	case Multiply:
		return Question{Operand1: a, Operand2: b, Operator: Times}, nil
	case Subtract:
		if a < b {
			a, b = b, a
		}
		return Question{Operand1: a, Operand2: b, Operator: Minus}, nil
	case Division:
		// a*b siempre es múltiplo de b
		return Question{Operand1: a * b, Operand2: b, Operator: Divide}, nil
	}
	return Question{}, fmt.Errorf("%w: %s", ErrUnknownGameType, kind)
}

// Expected calcula la respuesta correcta y el tipo de juego de la pregunta
func Expected(q Question) (int, GameType, error) {
	switch q.Operator {
	case Plus:
		return q.Operand1 + q.Operand2, Addition, nil
	case Times:
		return q.Operand1 * q.Operand2, Multiply, nil
	case Minus:
		return q.Operand1 - q.Operand2, Subtract, nil
	case Divide:
		if q.Operand2 == 0 || q.Operand1%q.Operand2 != 0 {
			return 0, Division, fmt.Errorf("%w: %s is not an exact division", ErrInvalidQuestion, q)
		}
		return q.Operand1 / q.Operand2, Division, nil
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrUnimplementedOperator, string(q.Operator))
}
