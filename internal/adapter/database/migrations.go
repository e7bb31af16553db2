package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration registra uma migração SQL já aplicada
type Migration struct {
	ID        uint  `gorm:"primaryKey"`
	Version   int64 `gorm:"uniqueIndex"`
	Name      string
	AppliedAt time.Time
}

// MigrationManager aplica arquivos de migração SQL além do esquema
// gerenciado pelo AutoMigrate (índices extras, backfills)
type MigrationManager struct {
	db        *gorm.DB
	logger    *zap.Logger
	directory string
}

// NewMigrationManager cria um novo gerenciador de migrações
func NewMigrationManager(db *gorm.DB, logger *zap.Logger, directory string) *MigrationManager {
	return &MigrationManager{
		db:        db,
		logger:    logger,
		directory: directory,
	}
}

// ApplyMigrations aplica todas as migrações pendentes, cada uma em sua
// própria transação
func (m *MigrationManager) ApplyMigrations(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&Migration{}); err != nil {
		return fmt.Errorf("falha ao criar tabela de migrações: %w", err)
	}

	var applied []Migration
	if err := m.db.WithContext(ctx).Order("version").Find(&applied).Error; err != nil {
		return fmt.Errorf("falha ao buscar migrações aplicadas: %w", err)
	}

	appliedVersions := make(map[int64]bool, len(applied))
	for _, migration := range applied {
		appliedVersions[migration.Version] = true
	}

	files, err := m.findMigrationFiles()
	if err != nil {
		return err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Version < files[j].Version
	})

	for _, file := range files {
		if appliedVersions[file.Version] {
			continue
		}

		m.logger.Info("Aplicando migração",
			zap.Int64("version", file.Version),
			zap.String("name", file.Name))

		content, err := os.ReadFile(file.Path)
		if err != nil {
			return fmt.Errorf("falha ao ler arquivo de migração: %w", err)
		}

		err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, stmt := range splitStatements(string(content)) {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("falha ao executar migração %s: %w", file.Name, err)
				}
			}
			return tx.Create(&Migration{
				Version:   file.Version,
				Name:      file.Name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return err
		}

		m.logger.Info("Migração aplicada com sucesso",
			zap.Int64("version", file.Version),
			zap.String("name", file.Name))
	}

	return nil
}

// splitStatements divide um arquivo SQL em comandos individuais.
// Comentários de linha são descartados; ponto e vírgula dentro de
// strings não é tratado (não usamos strings com ';' nas migrações).
func splitStatements(sql string) []string {
	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		kept = append(kept, line)
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// MigrationFile representa um arquivo de migração no disco
type MigrationFile struct {
	Version int64
	Name    string
	Path    string
}

// findMigrationFiles localiza os arquivos .sql no formato
// YYYYMMDDHHMMSS_nome.sql. Um diretório ausente não é erro.
func (m *MigrationManager) findMigrationFiles() ([]MigrationFile, error) {
	entries, err := os.ReadDir(m.directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("falha ao listar arquivos de migração: %w", err)
	}

	var files []MigrationFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) != 2 {
			m.logger.Warn("Formato de arquivo de migração inválido", zap.String("file", entry.Name()))
			continue
		}

		version, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			m.logger.Warn("Versão de migração inválida", zap.String("file", entry.Name()))
			continue
		}

		files = append(files, MigrationFile{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			Path:    filepath.Join(m.directory, entry.Name()),
		})
	}

	return files, nil
}

// CreateMigration cria um novo arquivo de migração vazio
func (m *MigrationManager) CreateMigration(name string) (string, error) {
	name = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	timestamp := time.Now().Format("20060102150405")

	if err := os.MkdirAll(m.directory, 0755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório: %w", err)
	}

	path := filepath.Join(m.directory, fmt.Sprintf("%s_%s.sql", timestamp, name))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("falha ao criar arquivo: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("falha ao fechar arquivo: %w", err)
	}

	return path, nil
}
