package backend

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeSucceeded(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   bool
	}{
		{"success true", `{"success": true, "data": []}`, http.StatusOK, true},
		{"success false", `{"success": false, "message": "nope"}`, http.StatusOK, false},
		{"status string ok", `{"status": "success", "data": {}}`, http.StatusOK, true},
		{"status string error", `{"status": "error", "message": "broken"}`, http.StatusOK, false},
		{"status number", `{"status": 200}`, http.StatusOK, true},
		{"status number failure", `{"status": 404, "message": "missing"}`, http.StatusOK, false},
		{"data only", `{"data": [1, 2]}`, http.StatusOK, true},
		{"message only", `{"message": "done"}`, http.StatusCreated, true},
		{"http failure wins", `{"success": true}`, http.StatusInternalServerError, false},
		{"empty", ``, http.StatusNoContent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := decodeEnvelope([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, env.succeeded(tt.status))
		})
	}
}

func TestDecodeEnvelopeBarePayload(t *testing.T) {
	env, err := decodeEnvelope([]byte(`[{"id_player": 1}]`))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id_player": 1}]`, string(env.Data))

	env, err = decodeEnvelope([]byte(`{"id_player": 1, "position": "gk"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id_player": 1, "position": "gk"}`, string(env.Data))

	_, err = decodeEnvelope([]byte(`<html>`))
	assert.Error(t, err)
}

func TestErrorClassification(t *testing.T) {
	env, err := decodeEnvelope([]byte(`{"success": false, "message": "Player does not belong to any team"}`))
	require.NoError(t, err)

	var backendErr error = env.asError(http.StatusOK)
	assert.ErrorIs(t, backendErr, ErrNoTeam)
	assert.NotErrorIs(t, backendErr, ErrUnauthorized)

	notFound := &Error{StatusCode: http.StatusNotFound, Message: "Player missing"}
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.NotErrorIs(t, notFound, ErrNoTeam)

	assert.ErrorIs(t, &Error{StatusCode: http.StatusForbidden, Message: "x"}, ErrUnauthorized)
	assert.Equal(t, "Player missing", Message(notFound))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

func TestEnvelopeValidationMessage(t *testing.T) {
	env, err := decodeEnvelope([]byte(`{"success": false, "errors": {"age": ["The age must be at least 16."]}}`))
	require.NoError(t, err)
	assert.Equal(t, "The age must be at least 16.", env.asError(http.StatusUnprocessableEntity).Message)
}
