package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestLogger cria um logger zap ligado ao *testing.T: a saída aparece
// junto do teste que falhou
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// SetupTestRouter cria um router gin em modo de teste, apenas com recovery
func SetupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())
	return router
}

// MakeRequest executa uma requisição contra o router e devolve o
// recorder. O corpo pode ser string, []byte ou qualquer valor
// serializável como JSON; nos três casos o Content-Type é JSON.
func MakeRequest(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var payload []byte

	switch v := body.(type) {
	case nil:
	case string:
		payload = []byte(v)
	case []byte:
		payload = v
	default:
		data, err := json.Marshal(body)
		require.NoError(t, err, "corpo da requisição não serializável")
		payload = data
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// ParseResponse deserializa o corpo JSON da resposta em dst
func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, dst interface{}) {
	require.NotNil(t, resp)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), dst),
		"resposta não é JSON válido: %s", resp.Body.String())
}

// ContextWithTimeout cria um contexto com o timeout padrão dos testes
func ContextWithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// RequireHTTPStatus falha o teste se o status da resposta for outro,
// incluindo o corpo na mensagem para facilitar o diagnóstico
func RequireHTTPStatus(t *testing.T, resp *httptest.ResponseRecorder, status int) {
	require.Equal(t, status, resp.Code, "status inesperado, corpo: %s", resp.Body.String())
}

// RequireJSONContentType falha o teste se a resposta não for JSON
func RequireJSONContentType(t *testing.T, resp *httptest.ResponseRecorder) {
	require.Contains(t, resp.Header().Get("Content-Type"), "application/json")
}
