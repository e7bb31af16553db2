package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meukanban/kanban-api/internal/app/auth"
	apphttp "github.com/meukanban/kanban-api/internal/adapter/http"
)

// AuthMiddleware gerencia middlewares de autenticação
type AuthMiddleware struct {
	authService *auth.Service
	logger      *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(authService *auth.Service, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Authenticate verifica se o usuário está autenticado
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	// Skip autenticação para rotas públicas
	if isPublicRoute(c.Request.URL.Path) {
		c.Next()
		return
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header não fornecido"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato inválido do token"})
		return
	}

	user, err := m.authService.ValidateToken(c.Request.Context(), tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
		return
	}

	// Armazena o usuário no contexto para uso posterior
	c.Set("user", user)
	c.Set(apphttp.ContextUserIDKey, user.ID)
	c.Next()
}

// isPublicRoute determina se uma rota é pública
func isPublicRoute(path string) bool {
	publicPaths := []string{
		"/health",
		"/auth",
		"/metrics",
	}

	for _, publicPath := range publicPaths {
		if strings.HasPrefix(path, publicPath) {
			return true
		}
	}

	return false
}
