package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meukanban/kanban-api/internal/app/workspace"
	"github.com/meukanban/kanban-api/internal/infra/metrics"
)

// WorkspaceHandler implementa os handlers de gerenciamento de workspaces
type WorkspaceHandler struct {
	service *workspace.Service
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewWorkspaceHandler cria um novo handler de workspaces
func NewWorkspaceHandler(service *workspace.Service, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		service: service,
		logger:  logger,
	}
}

// SetMetrics configura o objeto de métricas
func (h *WorkspaceHandler) SetMetrics(m *metrics.APIMetrics) {
	h.metrics = m
}

// List retorna os workspaces do usuário e o ativo resolvido
func (h *WorkspaceHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), uid)
	if err != nil {
		h.logger.Error("Falha ao listar workspaces", zap.Error(err))
		if h.metrics != nil {
			h.metrics.RequestError(c.FullPath(), c.Request.Method, "list_workspaces_error")
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateWorkspaceRequest é o corpo da criação de workspace
type CreateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Create adiciona um workspace; nome duplicado é no-op bem-sucedido
func (h *WorkspaceHandler) Create(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	result, err := h.service.Create(c.Request.Context(), uid, req.Name, req.Description, req.Icon)
	if err != nil {
		h.logger.Error("Falha ao criar workspace", zap.Error(err))
		if h.metrics != nil {
			h.metrics.RequestError(c.FullPath(), c.Request.Method, "create_workspace_error")
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspaces": result.Workspaces})
}

// SetActiveRequest é o corpo da troca de workspace ativo
type SetActiveRequest struct {
	ActiveWorkspace string `json:"activeWorkspace"`
}

// SetActive atualiza o workspace ativo do usuário
func (h *WorkspaceHandler) SetActive(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	active, err := h.service.SetActive(c.Request.Context(), uid, req.ActiveWorkspace)
	if err != nil {
		h.logger.Error("Falha ao atualizar workspace ativo", zap.Error(err))
		if h.metrics != nil {
			h.metrics.RequestError(c.FullPath(), c.Request.Method, "set_active_workspace_error")
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activeWorkspace": active})
}

// DeleteWorkspaceRequest é o corpo da exclusão de workspace
type DeleteWorkspaceRequest struct {
	Name string `json:"name"`
}

// Delete remove um workspace e reatribui o ativo se necessário
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req DeleteWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	result, err := h.service.Delete(c.Request.Context(), uid, req.Name)
	if err != nil {
		h.logger.Error("Falha ao excluir workspace", zap.Error(err))
		if h.metrics != nil {
			h.metrics.RequestError(c.FullPath(), c.Request.Method, "delete_workspace_error")
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
