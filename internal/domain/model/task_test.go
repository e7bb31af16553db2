package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meukanban/kanban-api/internal/domain/model"
)

func TestParseStatus(t *testing.T) {
	t.Run("empty string defaults to pendente", func(t *testing.T) {
		status, err := model.ParseStatus("")
		require.NoError(t, err)
		assert.Equal(t, model.StatusPendente, status)
	})

	t.Run("accepts the three known states", func(t *testing.T) {
		for _, raw := range []string{"pendente", "em_andamento", "concluida"} {
			status, err := model.ParseStatus(raw)
			require.NoError(t, err)
			assert.Equal(t, model.Status(raw), status)
		}
	})

	t.Run("rejects unknown values instead of coercing", func(t *testing.T) {
		for _, raw := range []string{"done", "PENDENTE", "em andamento", "arquivada"} {
			_, err := model.ParseStatus(raw)
			assert.Error(t, err, "expected %q to be rejected", raw)
		}
	})
}

func TestStatusValid(t *testing.T) {
	assert.True(t, model.StatusPendente.Valid())
	assert.True(t, model.StatusEmAndamento.Valid())
	assert.True(t, model.StatusConcluida.Valid())
	assert.False(t, model.Status("").Valid())
	assert.False(t, model.Status("finalizada").Valid())
}

func TestTaskValidate(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		task := &model.Task{Title: "Comprar pão", Status: model.StatusPendente}
		assert.NoError(t, task.Validate())
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		task := &model.Task{Title: "   ", Status: model.StatusPendente}
		assert.Error(t, task.Validate())
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		task := &model.Task{Title: "Comprar pão", Status: model.Status("done")}
		assert.Error(t, task.Validate())
	})
}
