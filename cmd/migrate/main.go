package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"github.com/JunaidParamberi/MacroMateBack/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	if cfg.DBUrl == "" {
		logrus.Fatal("DB_URL is required")
	}

	migrationsPath, err := findMigrationsDir()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to locate migrations")
	}

	m, err := migrate.New("file://"+migrationsPath, cfg.DBUrl)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize migrator")
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logrus.WithError(err).Fatal("Migration down failed")
		}
		logrus.Info("Migration down successful")
	default:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logrus.WithError(err).Fatal("Migration up failed")
		}
		logrus.Info("Migration up successful")
	}
}

// findMigrationsDir walks from the working directory up to the filesystem
// root looking for a migrations directory, so the runner works from the repo
// root and from any package directory inside it.
func findMigrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "migrations")
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("migrations directory not found")
		}
		dir = parent
	}
}
