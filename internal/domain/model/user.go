package model

import "time"

// DefaultWorkspaceName é o workspace usado quando o usuário não tem um
// workspace ativo válido
const DefaultWorkspaceName = "Meu Kanban"

// DefaultWorkspaceIcon é o ícone atribuído a workspaces criados sem ícone
const DefaultWorkspaceIcon = "layout"

// Workspace é um agrupamento nomeado de tarefas, embutido no documento do
// usuário. O nome é a identidade: único por usuário, sem ID próprio.
type Workspace struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"` // layout, briefcase, user, book, coffee
}

// DefaultWorkspaces é a semente criada no registro de um novo usuário
func DefaultWorkspaces() []Workspace {
	return []Workspace{
		{Name: "Meu Kanban", Description: "Espaço padrão", Icon: "layout"},
		{Name: "Trabalho", Description: "Projetos profissionais", Icon: "briefcase"},
		{Name: "Pessoal", Description: "Vida pessoal", Icon: "user"},
	}
}

// User representa um usuário do sistema. A senha nunca aparece aqui.
type User struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Workspaces      []Workspace `json:"workspaces"`
	ActiveWorkspace string      `json:"activeWorkspace"`
}

// ResolveActiveWorkspace devolve o workspace ativo armazenado ou, se
// vazio, o primeiro da lista, ou o padrão quando a lista está vazia.
// Referências penduradas são toleradas: um ativo que não existe mais na
// lista é devolvido como está.
func (u *User) ResolveActiveWorkspace() string {
	if u.ActiveWorkspace != "" {
		return u.ActiveWorkspace
	}
	if len(u.Workspaces) > 0 {
		return u.Workspaces[0].Name
	}
	return DefaultWorkspaceName
}

// HasWorkspace verifica se já existe um workspace com o nome dado
// (comparação exata, sensível a maiúsculas)
func (u *User) HasWorkspace(name string) bool {
	for _, w := range u.Workspaces {
		if w.Name == name {
			return true
		}
	}
	return false
}

// UserEntity é a representação de banco de dados de um usuário. A lista de
// workspaces é serializada como JSON dentro da própria linha, preservando
// a ordem de inserção.
type UserEntity struct {
	ID              string    `gorm:"primaryKey;size:36"`
	Name            string    `gorm:"not null;size:100"`
	Email           string    `gorm:"uniqueIndex;not null;size:100"`
	Password        string    `gorm:"not null"`
	WorkspacesJSON  string    `gorm:"column:workspaces;type:json"`
	ActiveWorkspace string    `gorm:"size:100"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (UserEntity) TableName() string {
	return "users"
}
