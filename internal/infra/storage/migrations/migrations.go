// Package migrations применяет SQL схему сервиса, встроенную в бинарник.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/LacerdaAcacio/agendei-booking/pkg/dbmetrics"
	"github.com/LacerdaAcacio/agendei-booking/pkg/psqlbuilder"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

const (
	migrationsDir   = "postgres"
	migrationsTable = "schema_migrations"
)

// TransactionManager открывает транзакцию для каждой миграции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Files возвращает имена .up.sql файлов в порядке применения
func Files() ([]string, error) {
	entries, err := postgresFS.ReadDir(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	return upFiles, nil
}

// Run применяет ещё не применённые миграции. Каждая миграция выполняется в своей
// транзакции вместе с записью в schema_migrations.
func Run(ctx context.Context, db dbmetrics.DBExecutor, txManager TransactionManager, log Logger) (int, error) {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (version VARCHAR(255) PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW())",
		migrationsTable,
	)); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", migrationsTable, err)
	}

	files, err := Files()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, file := range files {
		version := strings.TrimSuffix(file, ".up.sql")

		done, err := isApplied(ctx, db, version)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		migration, err := postgresFS.ReadFile(migrationsDir + "/" + file)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		err = txManager.Do(ctx, func(txCtx context.Context) error {
			executor := dbmetrics.GetExecutor(txCtx, db)

			if _, err := executor.ExecContext(txCtx, string(migration)); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", file, err)
			}

			query, args, err := psqlbuilder.Insert(migrationsTable).
				Columns("version").
				Values(version).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build version insert: %w", err)
			}

			if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", file, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		log.Info("Migration applied: %s", version)
		applied++
	}

	return applied, nil
}

func isApplied(ctx context.Context, db dbmetrics.DBExecutor, version string) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From(migrationsTable).
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build version query: %w", err)
	}

	var one int
	err = db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return true, nil
}
