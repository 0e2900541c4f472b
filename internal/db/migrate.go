package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gym-app-go/pkg/logger"
	"gorm.io/gorm"
)

const migrationsDirName = "migrations"

// schemaMigration records one applied file.
type schemaMigration struct {
	Filename  string `gorm:"primaryKey"`
	AppliedAt time.Time
}

func (schemaMigration) TableName() string { return "schema_migrations" }

// Migrate applies every .sql file from the nearest migrations directory that
// is not yet recorded in schema_migrations, in file name order. Each file runs
// in its own transaction together with its bookkeeping row.
func Migrate(db *gorm.DB, log logger.Logger) error {
	log = log.Component("migrate")

	dir, err := findUpwardDir(migrationsDirName)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("db: migrations directory not found, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	if err := ensureSchemaMigrations(db); err != nil {
		log.InternalError("db: create schema_migrations failed", err)
		return err
	}

	files, err := migrationFiles(dir)
	if err != nil {
		return err
	}
	applied, err := appliedMigrations(db)
	if err != nil {
		log.InternalError("db: read schema_migrations failed", err)
		return err
	}

	count := 0
	for _, name := range files {
		if applied[name] {
			log.Debug("db: migration already applied", "file", name)
			continue
		}

		contents, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		sql := strings.TrimSpace(string(contents))
		if sql == "" {
			log.Warn("db: empty migration, skipping", "file", name)
			continue
		}

		if err := applyMigration(db, name, sql); err != nil {
			log.InternalError("db: migration failed", err, "file", name)
			return err
		}
		log.Info("db: applied migration", "file", name)
		count++
	}

	log.Info("db: migrations up to date", "applied", count, "total", len(files))
	return nil
}

func ensureSchemaMigrations(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`).Error
}

func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".sql" {
			files = append(files, entry.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

func appliedMigrations(db *gorm.DB) (map[string]bool, error) {
	var rows []schemaMigration
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(rows))
	for _, row := range rows {
		applied[row.Filename] = true
	}
	return applied, nil
}

func applyMigration(db *gorm.DB, name, sql string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(sql).Error; err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		return tx.Create(&schemaMigration{Filename: name, AppliedAt: time.Now().UTC()}).Error
	})
}

// findUpwardDir walks from the working directory to the root looking for a
// directory called name.
func findUpwardDir(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
