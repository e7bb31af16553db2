package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/meukanban/kanban-api/internal/adapter/database"
	"github.com/meukanban/kanban-api/internal/domain/model"
)

func main() {
	var (
		name     string
		password string
		email    string
		dbDriver string
		dbDSN    string
		verbose  bool
	)

	flag.StringVar(&name, "name", "", "Nome do usuário")
	flag.StringVar(&password, "password", "", "Senha do usuário")
	flag.StringVar(&email, "email", "", "Email do usuário")
	flag.StringVar(&dbDriver, "driver", "sqlite", "Driver do banco de dados (sqlite, mysql, postgres)")
	flag.StringVar(&dbDSN, "dsn", "./kanban.db", "DSN do banco de dados")
	flag.BoolVar(&verbose, "verbose", false, "Mostrar logs detalhados")
	flag.Parse()

	if name == "" || password == "" || email == "" {
		fmt.Println("Erro: name, password e email não podem ser vazios.")
		flag.Usage()
		os.Exit(1)
	}

	cfg := zap.NewProductionConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		cfg.OutputPaths = []string{"stderr"}
	}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbConfig := database.Config{
		Driver:          dbDriver,
		DSN:             dbDSN,
		MaxIdleConns:    5,
		MaxOpenConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		LogLevel:        database.LogLevelError,
		SlowThreshold:   200 * time.Millisecond,
		SkipMigrations:  true,
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if !db.DB().Migrator().HasTable(&model.UserEntity{}) {
		if err := db.DB().AutoMigrate(&model.UserEntity{}); err != nil {
			fmt.Printf("Erro ao criar tabela de usuários: %v\n", err)
			os.Exit(1)
		}
	}

	var existingUser model.UserEntity
	result := db.DB().Where("email = ?", email).First(&existingUser)

	isUpdate := false

	if result.Error == nil {
		isUpdate = true
		fmt.Printf("Usuário com email '%s' já existe. Deseja sobrescrevê-lo? (s/n): ", email)
		var response string
		fmt.Scanln(&response)

		if response != "s" && response != "S" {
			fmt.Println("Operação cancelada pelo usuário.")
			os.Exit(0)
		}

		db.DB().Delete(&existingUser)
	} else if result.Error != gorm.ErrRecordNotFound {
		fmt.Printf("Erro ao verificar usuário existente: %v\n", result.Error)
		os.Exit(1)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Erro ao processar senha: %v\n", err)
		os.Exit(1)
	}

	workspacesJSON, err := json.Marshal(model.DefaultWorkspaces())
	if err != nil {
		fmt.Printf("Erro ao serializar workspaces: %v\n", err)
		os.Exit(1)
	}

	user := model.UserEntity{
		ID:              uuid.New().String(),
		Name:            name,
		Email:           email,
		Password:        string(hashedPassword),
		WorkspacesJSON:  string(workspacesJSON),
		ActiveWorkspace: model.DefaultWorkspaceName,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := db.DB().Create(&user).Error; err != nil {
		fmt.Printf("Erro ao salvar usuário no banco de dados: %v\n", err)
		os.Exit(1)
	}

	if isUpdate {
		fmt.Println("Usuário atualizado com sucesso")
	} else {
		fmt.Println("Usuário criado com sucesso")
	}
	fmt.Printf("ID: %s\nNome: %s\nEmail: %s\n", user.ID, name, email)
	fmt.Println("\nUse POST /auth/login para obter um token de acesso.")
}
