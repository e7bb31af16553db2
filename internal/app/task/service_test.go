package task_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/meukanban/kanban-api/internal/app/task"
	"github.com/meukanban/kanban-api/internal/domain/model"
	"github.com/meukanban/kanban-api/internal/domain/repository"
	"github.com/meukanban/kanban-api/internal/mocks"
	"github.com/meukanban/kanban-api/internal/testutils"
	apperrors "github.com/meukanban/kanban-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestTaskService_List(t *testing.T) {
	t.Run("scopes by user and workspace", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		expected := []*model.Task{
			{ID: "t2", Title: "mais recente"},
			{ID: "t1", Title: "mais antiga"},
		}

		repo.On("ListByWorkspace", mock.Anything, "u1", "Trabalho").
			Return(expected, nil).Once()

		tasks, err := service.List(ctx, "u1", "Trabalho")

		require.NoError(t, err)
		assert.Equal(t, expected, tasks)
		repo.AssertExpectations(t)
	})

	t.Run("empty workspace means the default one", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("ListByWorkspace", mock.Anything, "u1", model.DefaultWorkspaceName).
			Return([]*model.Task{}, nil).Once()

		_, err := service.List(ctx, "u1", "")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestTaskService_Create(t *testing.T) {
	t.Run("fills defaults and persists", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		var persisted *model.Task
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*model.Task)
			}).
			Return(&model.Task{ID: "t1"}, nil).Once()

		created, err := service.Create(ctx, "u1", task.CreateInput{
			Title: "  Comprar pão  ",
		})

		require.NoError(t, err)
		assert.Equal(t, "t1", created.ID)

		require.NotNil(t, persisted)
		assert.Equal(t, "Comprar pão", persisted.Title, "title must be trimmed")
		assert.Equal(t, model.StatusPendente, persisted.Status)
		assert.Equal(t, model.DefaultWorkspaceName, persisted.Workspace)
		assert.Equal(t, "u1", persisted.UserID)
		assert.NotEmpty(t, persisted.ID)
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Create(ctx, "u1", task.CreateInput{Title: "   "})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("unknown status is rejected, not coerced", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Create(ctx, "u1", task.CreateInput{
			Title:  "Comprar pão",
			Status: "done",
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
		repo.AssertNotCalled(t, "Create")
	})
}

func TestTaskService_Update(t *testing.T) {
	t.Run("partial update only touches provided fields", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		updated := &model.Task{ID: "t1", Title: "Novo título", Status: model.StatusEmAndamento}

		repo.On("Update", mock.Anything, "u1", "t1", mock.MatchedBy(func(u model.TaskUpdate) bool {
			return u.Title != nil && *u.Title == "Novo título" &&
				u.Status != nil && *u.Status == model.StatusEmAndamento &&
				u.Description == nil
		})).Return(updated, nil).Once()

		result, err := service.Update(ctx, "u1", "t1", task.UpdateInput{
			Title:  strPtr("  Novo título "),
			Status: strPtr("em_andamento"),
		})

		require.NoError(t, err)
		assert.Equal(t, updated, result)
		repo.AssertExpectations(t)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Update(ctx, "u1", "t1", task.UpdateInput{Title: strPtr("  ")})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Update(ctx, "u1", "t1", task.UpdateInput{Status: strPtr("arquivada")})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("another owner's task reads as 404", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("Update", mock.Anything, "u2", "t1", mock.Anything).
			Return(nil, repository.ErrTaskNotFound).Once()

		_, err := service.Update(ctx, "u2", "t1", task.UpdateInput{Title: strPtr("invasão")})

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
	})
}

func TestTaskService_Delete(t *testing.T) {
	t.Run("delegates to the repository", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("Delete", mock.Anything, "u1", "t1").Return(nil).Once()

		require.NoError(t, service.Delete(ctx, "u1", "t1"))
		repo.AssertExpectations(t)
	})

	t.Run("missing task reads as 404", func(t *testing.T) {
		repo := new(mocks.MockTaskRepository)
		service := task.NewService(repo, testutils.TestLogger(t))

		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo.On("Delete", mock.Anything, "u1", "ghost").
			Return(repository.ErrTaskNotFound).Once()

		err := service.Delete(ctx, "u1", "ghost")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
	})
}
