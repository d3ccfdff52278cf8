package quiz

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Answer respuesta escrita por el jugador
type Answer struct {
	Value int
	Valid bool
	// huge guarda en decimal las respuestas que no caben en un int
	huge string
}

// ParseAnswer lee un entero al principio del texto, ignorando espacios
// iniciales y lo que venga después de los dígitos ("12abc" es 12).
// Acepta el prefijo 0x para hexadecimal. Sin dígitos la respuesta no es un
// número y nunca será correcta.
func ParseAnswer(raw string) Answer {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	base, isDigit := 10, isDecimal
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, isDigit = 16, isHex
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == 0 {
		return Answer{}
	}

	n, ok := new(big.Int).SetString(sign+s[:end], base)
	if !ok {
		return Answer{}
	}
	if !n.IsInt64() || int64(int(n.Int64())) != n.Int64() {
		return Answer{Valid: true, huge: n.String()}
	}
	return Answer{Value: int(n.Int64()), Valid: true}
}

func isDecimal(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (a Answer) String() string {
	switch {
	case !a.Valid:
		return "NaN"
	case a.huge != "":
		return a.huge
	}
	return strconv.Itoa(a.Value)
}

// Matches compara con igualdad exacta
func (a Answer) Matches(expected int) bool {
	return a.Valid && a.huge == "" && a.Value == expected
}
