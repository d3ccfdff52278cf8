package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Answer
		str   string
	}{
		{input: "10", want: Answer{Value: 10, Valid: true}, str: "10"},
		{input: "  7", want: Answer{Value: 7, Valid: true}, str: "7"},
		{input: "007", want: Answer{Value: 7, Valid: true}, str: "7"},
		{input: "-3", want: Answer{Value: -3, Valid: true}, str: "-3"},
		{input: "+4", want: Answer{Value: 4, Valid: true}, str: "4"},
		{input: "12abc", want: Answer{Value: 12, Valid: true}, str: "12"},
		{input: "3.9", want: Answer{Value: 3, Valid: true}, str: "3"},
		{input: "", want: Answer{}, str: "NaN"},
		{input: "abc", want: Answer{}, str: "NaN"},
		{input: "-", want: Answer{}, str: "NaN"},
		{input: "0x10", want: Answer{Value: 16, Valid: true}, str: "16"},
		{input: " -0XfF!", want: Answer{Value: -255, Valid: true}, str: "-255"},
		{input: "0x", want: Answer{}, str: "NaN"},
		{input: "0xg", want: Answer{}, str: "NaN"},
		{input: "0012", want: Answer{Value: 12, Valid: true}, str: "12"},
		{input: "99999999999999999999", want: Answer{Valid: true, huge: "99999999999999999999"}, str: "99999999999999999999"},
		{input: "-000099999999999999999999", want: Answer{Valid: true, huge: "-99999999999999999999"}, str: "-99999999999999999999"},
	}

	for _, tc := range tests {
		got := ParseAnswer(tc.input)
		assert.Equal(t, tc.want, got, "ParseAnswer(%q)", tc.input)
		assert.Equal(t, tc.str, got.String(), "ParseAnswer(%q).String()", tc.input)
	}
}

func TestAnswer_Matches(t *testing.T) {
	t.Parallel()

	assert.True(t, ParseAnswer("10").Matches(10))
	assert.False(t, ParseAnswer("11").Matches(10))
	assert.False(t, ParseAnswer("abc").Matches(0))
	assert.True(t, ParseAnswer("0xa").Matches(10))
	assert.False(t, ParseAnswer("99999999999999999999").Matches(0))
}
