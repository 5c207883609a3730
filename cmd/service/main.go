package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KENZY004/contact-management/internal/config"
	"github.com/KENZY004/contact-management/internal/logging"
	"github.com/KENZY004/contact-management/internal/repository"
	"github.com/KENZY004/contact-management/internal/service"
)

// Usage example on the command line:
// > PORT=5000 DB_DRIVER=mongo MONGODB_URI=mongodb://localhost:27017 go run main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("could not load configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	repo, err := buildRepository(cfg)
	if err != nil {
		// A store that cannot be reached at startup is fatal.
		logging.Fatal("could not connect to the contact store", "driver", cfg.DBDriver, "error", err)
	}

	svc := service.New(repo)
	router := svc.SetupHttpRouter()
	slog.Info("server listening", "port", cfg.Port, "driver", cfg.DBDriver)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logging.Fatal("server stopped", "error", err)
	}
}

// buildRepository connects the repository backend selected by DB_DRIVER.
func buildRepository(cfg config.Config) (repository.ContactRepository, error) {
	switch cfg.DBDriver {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return repository.NewMongoRepository(ctx, cfg.MongoURI, cfg.MongoDB)
	case "mysql":
		sqlDB, err := repository.OpenMySQL(cfg.MySQLDSN())
		if err != nil {
			return nil, err
		}
		if err := sqlDB.Ping(); err != nil {
			return nil, err
		}
		return repository.NewSQLRepository(sqlDB)
	case "memory":
		return repository.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
