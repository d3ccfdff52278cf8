package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsset(t *testing.T) {
	t.Parallel()

	page, contentType, err := Asset("index.html")
	require.NoError(t, err)
	assert.Contains(t, contentType, "text/html")
	for _, slot := range []string{`id="operand1"`, `id="operand2"`, `id="operator"`, `id="answer-box"`, `id="score"`, `id="incorrect"`, `data-type="submit"`} {
		assert.Contains(t, string(page), slot)
	}

	script, contentType, err := Asset("assets/js/scripts.js")
	require.NoError(t, err)
	assert.Contains(t, contentType, "javascript")
	assert.Contains(t, string(script), "/api/sessions")
	// las acciones se ignoran hasta tener sesión
	assert.Contains(t, string(script), "if (!sessionId) {")

	_, _, err = Asset("missing.css")
	assert.Error(t, err)
}
