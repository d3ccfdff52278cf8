package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Subtract(t *testing.T) {
	t.Parallel()

	for a := MinOperand; a <= MaxOperand; a++ {
		for b := MinOperand; b <= MaxOperand; b++ {
			q, err := Render(Subtract, a, b)
			require.NoError(t, err)

			assert.Equal(t, Minus, q.Operator)
			assert.GreaterOrEqual(t, q.Operand1, q.Operand2, "a=%d b=%d", a, b)
			assert.GreaterOrEqual(t, q.Operand1-q.Operand2, 0)
			assert.ElementsMatch(t, []int{a, b}, []int{q.Operand1, q.Operand2})
		}
	}
}

func TestRender_Division(t *testing.T) {
	t.Parallel()

	for a := MinOperand; a <= MaxOperand; a++ {
		for b := MinOperand; b <= MaxOperand; b++ {
			q, err := Render(Division, a, b)
			require.NoError(t, err)

			assert.Equal(t, Divide, q.Operator)
			assert.Equal(t, b, q.Operand2)
			assert.Zero(t, q.Operand1%q.Operand2, "a=%d b=%d", a, b)
			assert.Equal(t, a, q.Operand1/q.Operand2)
		}
	}
}

func TestRender_UnknownGameType(t *testing.T) {
	t.Parallel()

	_, err := Render(GameType(42), 1, 2)
	assert.ErrorIs(t, err, ErrUnknownGameType)
}

func TestExpected_InvertsRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind GameType
		want func(a, b int) int
	}{
		{kind: Addition, want: func(a, b int) int { return a + b }},
		{kind: Multiply, want: func(a, b int) int { return a * b }},
		{kind: Subtract, want: func(a, b int) int {
			if a > b {
				return a - b
			}
			return b - a
		}},
		{kind: Division, want: func(a, b int) int { return a }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()

			for a := MinOperand; a <= MaxOperand; a++ {
				for b := MinOperand; b <= MaxOperand; b++ {
					q, err := Render(tt.kind, a, b)
					require.NoError(t, err)

					got, kind, err := Expected(q)
					require.NoError(t, err)
					assert.Equal(t, tt.want(a, b), got)
					assert.Equal(t, tt.kind, kind)
				}
			}
		})
	}
}

func TestExpected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		question Question
		want     int
		kind     GameType
		wantErr  error
	}{
		{name: "addition", question: Question{7, 3, Plus}, want: 10, kind: Addition},
		{name: "multiply", question: Question{6, 4, Times}, want: 24, kind: Multiply},
		{name: "subtract", question: Question{9, 2, Minus}, want: 7, kind: Subtract},
		{name: "division", question: Question{12, 4, Divide}, want: 3, kind: Division},
		{name: "unknown operator", question: Question{1, 2, Operator("%")}, wantErr: ErrUnimplementedOperator},
		{name: "inexact division", question: Question{13, 4, Divide}, wantErr: ErrInvalidQuestion},
		{name: "division by zero", question: Question{13, 0, Divide}, wantErr: ErrInvalidQuestion},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, kind, err := Expected(tt.question)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestQuestion_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		question Question
		wantErr  error
	}{
		{name: "addition", question: Question{3, 20, Plus}},
		{name: "exact division", question: Question{50, 25, Divide}},
		{name: "inexact division", question: Question{51, 25, Divide}, wantErr: ErrInvalidQuestion},
		{name: "zero divisor", question: Question{5, 0, Divide}, wantErr: ErrInvalidQuestion},
		{name: "negative subtraction", question: Question{2, 9, Minus}, wantErr: ErrInvalidQuestion},
		{name: "negative operand", question: Question{-1, 9, Plus}, wantErr: ErrInvalidQuestion},
		{name: "unknown operator", question: Question{1, 1, Operator("^")}, wantErr: ErrUnimplementedOperator},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.question.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseGameType(t *testing.T) {
	t.Parallel()

	for _, g := range GameTypes() {
		got, err := ParseGameType(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, got)

		op, err := g.Operator()
		require.NoError(t, err)
		back, err := op.GameType()
		require.NoError(t, err)
		assert.Equal(t, g, back)
	}

	_, err := ParseGameType("unknown")
	assert.ErrorIs(t, err, ErrUnknownGameType)

	_, err = ParseOperator("%")
	assert.ErrorIs(t, err, ErrUnimplementedOperator)
}
