package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/meukanban/kanban-api/pkg/errors"
)

// ContextUserIDKey é a chave do gin.Context onde o middleware de
// autenticação deposita o identificador do usuário da sessão
const ContextUserIDKey = "userID"

// userID extrai o identificador do usuário autenticado do contexto.
// Retorna false (e aborta com 401) se o middleware não o depositou.
func userID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserIDKey)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return "", false
	}
	return id, true
}

// writeError traduz um erro do núcleo para o código HTTP e o corpo JSON
// correspondentes
func writeError(c *gin.Context, err error) {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		body := gin.H{"error": apiErr.Message}
		if apiErr.Details != nil {
			body["details"] = apiErr.Details
		}
		c.JSON(apiErr.Code, body)
		return
	}

	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": "Erro interno do servidor"})
}
