package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status é o estado de uma tarefa no quadro
type Status string

const (
	StatusPendente    Status = "pendente"
	StatusEmAndamento Status = "em_andamento"
	StatusConcluida   Status = "concluida"
)

// Valid verifica se o status é um dos três valores aceitos
func (s Status) Valid() bool {
	switch s {
	case StatusPendente, StatusEmAndamento, StatusConcluida:
		return true
	}
	return false
}

// ParseStatus converte uma string em Status. A string vazia vale como
// pendente; qualquer outro valor fora do enum é rejeitado, nunca coagido.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusPendente, nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("status inválido: %q", raw)
	}
	return s, nil
}

// Task representa uma tarefa pertencente a um usuário e um workspace
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Workspace   string    `json:"workspace"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate verifica os campos obrigatórios antes da criação
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("o título é obrigatório")
	}
	if !t.Status.Valid() {
		return fmt.Errorf("status inválido: %q", t.Status)
	}
	return nil
}

// TaskUpdate descreve uma atualização parcial de tarefa. Campos nil não
// são alterados. Workspace e dono são imutáveis após a criação.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *Status
}

// TaskEntity é a representação de banco de dados de uma tarefa
type TaskEntity struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"index;not null;size:36"`
	Workspace   string    `gorm:"index;not null;size:100"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"not null;size:20;default:pendente"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (TaskEntity) TableName() string {
	return "tasks"
}
