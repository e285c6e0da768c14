package httputil

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteJSON(rec, 200, map[string]string{"title": "Mario Kart"})
	require.NoError(t, err)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"title":"Mario Kart"}`, rec.Body.String())
}

func TestWriteNotFoundError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteNotFoundError(rec, "game not found")

	assert.Equal(t, 404, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "game not found", body.Error)
}

func TestWriteInternalError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteInternalError(rec, errors.New("database exploded"))

	assert.Equal(t, 500, rec.Code)
	assert.JSONEq(t, `{"error":"database exploded"}`, rec.Body.String())
}

func TestWriteBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteBadRequest(rec, "invalid id")

	assert.Equal(t, 400, rec.Code)
	assert.JSONEq(t, `{"error":"invalid id"}`, rec.Body.String())
}
