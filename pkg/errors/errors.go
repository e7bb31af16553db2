package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Tipos de erro comuns
var (
	ErrInvalidInput     = errors.New("dados de entrada inválidos")
	ErrNotFound         = errors.New("recurso não encontrado")
	ErrConflict         = errors.New("recurso já existe")
	ErrUnauthorized     = errors.New("não autorizado")
	ErrInternalServer   = errors.New("erro interno do servidor")
	ErrStoreUnavailable = errors.New("armazenamento indisponível")
)

// APIError representa um erro da API com informações adicionais
type APIError struct {
	Code        int         `json:"-"`
	Message     string      `json:"message"`
	Details     interface{} `json:"details,omitempty"`
	OriginalErr error       `json:"-"`
}

// Error implementa a interface error
func (e *APIError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	return e.Message
}

// Unwrap permite usar errors.Is e errors.As
func (e *APIError) Unwrap() error {
	return e.OriginalErr
}

// New cria um novo APIError
func New(code int, message string, err error) *APIError {
	return &APIError{
		Code:        code,
		Message:     message,
		OriginalErr: err,
	}
}

// WithDetails adiciona detalhes ao erro
func (e *APIError) WithDetails(details interface{}) *APIError {
	e.Details = details
	return e
}

// InvalidInput cria um erro 400 para campos ausentes ou malformados
func InvalidInput(message string, err error) *APIError {
	if message == "" {
		message = "Dados inválidos"
	}
	return New(http.StatusBadRequest, message, err)
}

// NotFound cria um erro 404. Recursos pertencentes a outro usuário também
// são reportados como NotFound, nunca como Forbidden.
func NotFound(resource string, err error) *APIError {
	message := fmt.Sprintf("%s não encontrado", resource)
	return New(http.StatusNotFound, message, err)
}

// Conflict cria um erro 409 para violações reais de unicidade
func Conflict(message string, err error) *APIError {
	if message == "" {
		message = "Recurso já existe"
	}
	return New(http.StatusConflict, message, err)
}

// Unauthorized cria um erro 401
func Unauthorized(message string, err error) *APIError {
	if message == "" {
		message = "Autenticação necessária"
	}
	return New(http.StatusUnauthorized, message, err)
}

// StoreUnavailable cria um erro 503 para falhas de transporte da camada
// de persistência; seguro para o chamador tentar novamente
func StoreUnavailable(message string, err error) *APIError {
	if message == "" {
		message = "Armazenamento temporariamente indisponível"
	}
	return New(http.StatusServiceUnavailable, message, err)
}

// InternalServer cria um erro 500
func InternalServer(message string, err error) *APIError {
	if message == "" {
		message = "Erro interno do servidor"
	}
	return New(http.StatusInternalServerError, message, err)
}

// HTTPStatus devolve o código HTTP adequado para um erro qualquer
func HTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
