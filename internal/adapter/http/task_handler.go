package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meukanban/kanban-api/internal/app/task"
	"github.com/meukanban/kanban-api/internal/infra/metrics"
)

// TaskHandler implementa os handlers de CRUD de tarefas
type TaskHandler struct {
	service *task.Service
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewTaskHandler cria um novo handler de tarefas
func NewTaskHandler(service *task.Service, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
	}
}

// SetMetrics configura o objeto de métricas
func (h *TaskHandler) SetMetrics(m *metrics.APIMetrics) {
	h.metrics = m
}

// List retorna as tarefas do workspace informado na query string,
// da mais recente para a mais antiga
func (h *TaskHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	tasks, err := h.service.List(c.Request.Context(), uid, c.Query("workspace"))
	if err != nil {
		h.logger.Error("Falha ao listar tarefas", zap.Error(err))
		if h.metrics != nil {
			h.metrics.RequestError(c.FullPath(), c.Request.Method, "list_tasks_error")
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTaskRequest é o corpo da criação de tarefa
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Workspace   string `json:"workspace"`
}

// Create valida e persiste uma nova tarefa
func (h *TaskHandler) Create(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), uid, task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Workspace:   req.Workspace,
	})
	if err != nil {
		h.logger.Error("Falha ao criar tarefa", zap.Error(err))
		if h.metrics != nil {
			h.metrics.RequestError(c.FullPath(), c.Request.Method, "create_task_error")
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateTaskRequest é o corpo da atualização parcial de tarefa.
// Campos ausentes não são alterados.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Update aplica uma atualização parcial à tarefa do caminho
func (h *TaskHandler) Update(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), uid, c.Param("id"), task.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.logger.Error("Falha ao atualizar tarefa",
			zap.String("task_id", c.Param("id")),
			zap.Error(err))
		if h.metrics != nil {
			h.metrics.RequestError(c.FullPath(), c.Request.Method, "update_task_error")
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete remove a tarefa do caminho
func (h *TaskHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		h.logger.Error("Falha ao excluir tarefa",
			zap.String("task_id", c.Param("id")),
			zap.Error(err))
		if h.metrics != nil {
			h.metrics.RequestError(c.FullPath(), c.Request.Method, "delete_task_error")
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tarefa excluída"})
}
