package errors_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/meukanban/kanban-api/pkg/errors"
)

func TestConstructorsCarryStatusCodes(t *testing.T) {
	cases := []struct {
		err  *apperrors.APIError
		code int
	}{
		{apperrors.InvalidInput("Nome inválido", nil), http.StatusBadRequest},
		{apperrors.NotFound("Tarefa", nil), http.StatusNotFound},
		{apperrors.Conflict("", nil), http.StatusConflict},
		{apperrors.Unauthorized("", nil), http.StatusUnauthorized},
		{apperrors.StoreUnavailable("", nil), http.StatusServiceUnavailable},
		{apperrors.InternalServer("", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.code, apperrors.HTTPStatus(tc.err))
		assert.NotEmpty(t, tc.err.Message)
	}
}

func TestNotFoundMessageNamesTheResource(t *testing.T) {
	err := apperrors.NotFound("Tarefa", nil)
	assert.Equal(t, "Tarefa não encontrado", err.Message)
}

func TestUnwrapPreservesTheCause(t *testing.T) {
	cause := errors.New("conexão recusada")
	err := apperrors.StoreUnavailable("", cause)

	assert.True(t, errors.Is(err, cause))

	var apiErr *apperrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Code)
}

func TestHTTPStatusForPlainErrors(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(errors.New("qualquer")))
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(apperrors.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(apperrors.ErrInvalidInput))
}

func TestWithDetails(t *testing.T) {
	err := apperrors.InvalidInput("Dados inválidos", nil).
		WithDetails(map[string]string{"campo": "title"})

	assert.NotNil(t, err.Details)
}
