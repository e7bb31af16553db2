package http_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apphttp "github.com/meukanban/kanban-api/internal/adapter/http"
	"github.com/meukanban/kanban-api/internal/app/task"
	"github.com/meukanban/kanban-api/internal/domain/model"
	"github.com/meukanban/kanban-api/internal/domain/repository"
	"github.com/meukanban/kanban-api/internal/mocks"
	"github.com/meukanban/kanban-api/internal/testutils"
)

func setupTaskRoutes(t *testing.T, repo *mocks.MockTaskRepository) *gin.Engine {
	service := task.NewService(repo, testutils.TestLogger(t))
	handler := apphttp.NewTaskHandler(service, testutils.TestLogger(t))

	router := testutils.SetupTestRouter(t)
	group := router.Group("/api", asUser("u1"))
	group.GET("/tasks", handler.List)
	group.POST("/tasks", handler.Create)
	group.PUT("/tasks/:id", handler.Update)
	group.DELETE("/tasks/:id", handler.Delete)
	return router
}

func TestTaskHandler_List(t *testing.T) {
	repo := new(mocks.MockTaskRepository)
	router := setupTaskRoutes(t, repo)

	expected := []*model.Task{
		{ID: "t2", Title: "mais recente", Status: model.StatusPendente, Workspace: "Trabalho"},
		{ID: "t1", Title: "mais antiga", Status: model.StatusConcluida, Workspace: "Trabalho"},
	}

	repo.On("ListByWorkspace", mock.Anything, "u1", "Trabalho").
		Return(expected, nil).Once()

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/tasks?workspace=Trabalho", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var body []model.Task
	testutils.ParseResponse(t, resp, &body)

	require.Len(t, body, 2)
	assert.Equal(t, "t2", body[0].ID)
	repo.AssertExpectations(t)
}

func TestTaskHandler_Create(t *testing.T) {
	t.Run("returns 201 with the created task", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		router := setupTaskRoutes(t, repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).
			Return(&model.Task{
				ID:        "t1",
				Title:     "Comprar pão",
				Status:    model.StatusPendente,
				Workspace: "Meu Kanban",
				UserID:    "u1",
			}, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/tasks",
			map[string]string{"title": "Comprar pão"}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

		var body model.Task
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, "t1", body.ID)
		assert.Equal(t, model.StatusPendente, body.Status)
	})

	t.Run("invalid status yields 400", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		router := setupTaskRoutes(t, repo)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/tasks",
			map[string]string{"title": "Comprar pão", "status": "done"}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("missing title yields 400", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		router := setupTaskRoutes(t, repo)

		resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/tasks",
			map[string]string{"description": "sem título"}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestTaskHandler_Update(t *testing.T) {
	t.Run("partial update returns the new state", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		router := setupTaskRoutes(t, repo)

		repo.On("Update", mock.Anything, "u1", "t1", mock.Anything).
			Return(&model.Task{ID: "t1", Title: "Comprar pão", Status: model.StatusConcluida}, nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPut, "/api/tasks/t1",
			map[string]string{"status": "concluida"}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body model.Task
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, model.StatusConcluida, body.Status)
	})

	t.Run("missing task yields 404", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		router := setupTaskRoutes(t, repo)

		repo.On("Update", mock.Anything, "u1", "ghost", mock.Anything).
			Return(nil, repository.ErrTaskNotFound).Once()

		resp := testutils.MakeRequest(t, router, http.MethodPut, "/api/tasks/ghost",
			map[string]string{"status": "concluida"}, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	t.Run("returns a confirmation message", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		router := setupTaskRoutes(t, repo)

		repo.On("Delete", mock.Anything, "u1", "t1").Return(nil).Once()

		resp := testutils.MakeRequest(t, router, http.MethodDelete, "/api/tasks/t1", nil, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body map[string]string
		testutils.ParseResponse(t, resp, &body)
		assert.NotEmpty(t, body["message"])
	})

	t.Run("missing task yields 404", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		router := setupTaskRoutes(t, repo)

		repo.On("Delete", mock.Anything, "u1", "ghost").
			Return(repository.ErrTaskNotFound).Once()

		resp := testutils.MakeRequest(t, router, http.MethodDelete, "/api/tasks/ghost", nil, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	})
}
