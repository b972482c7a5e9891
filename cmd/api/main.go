package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/homeboard/homeboard-backend/internal/auth"
	"github.com/homeboard/homeboard-backend/internal/config"
	"github.com/homeboard/homeboard-backend/internal/database"
	"github.com/homeboard/homeboard-backend/internal/domain"
	"github.com/homeboard/homeboard-backend/internal/logging"
	"github.com/homeboard/homeboard-backend/internal/mail"
	"github.com/homeboard/homeboard-backend/internal/repository"
	"github.com/homeboard/homeboard-backend/internal/server"
	"github.com/homeboard/homeboard-backend/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	slog.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	if dbService != nil {
		if err := dbService.Close(); err != nil {
			slog.Error("closing database connection pool", "error", err)
		}
	}

	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}
	logging.New(cfg.Log)

	dbService, err := database.New(cfg.DB)
	if err != nil {
		slog.Error("connecting to database", "error", err)
		os.Exit(1)
	}
	gormDB := dbService.GetDB()

	err = gormDB.AutoMigrate(
		&domain.User{},
		&domain.Group{},
		&domain.Todo{},
		&domain.Task{},
		&domain.Note{},
		&domain.CookingRecipe{},
		&domain.Vehicle{},
		&domain.Servicing{},
		&domain.Act{},
	)
	if err != nil {
		slog.Error("running database auto-migration", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewGormUserRepository(gormDB)
	groupRepo := repository.NewGormGroupRepository(gormDB)
	todoRepo := repository.NewGormTodoRepository(gormDB)
	noteRepo := repository.NewGormNoteRepository(gormDB)
	recipeRepo := repository.NewGormRecipeRepository(gormDB)
	vehicleRepo := repository.NewGormVehicleRepository(gormDB)

	tokens := auth.NewTokenManager(cfg.Auth)
	mailer := mail.New(cfg.Mail)

	services := server.Services{
		Auth:     service.NewAuthService(userRepo, tokens),
		Users:    service.NewUserService(userRepo, mailer),
		Todos:    service.NewTodoService(todoRepo, groupRepo),
		Notes:    service.NewNoteService(noteRepo, groupRepo),
		Recipes:  service.NewRecipeService(recipeRepo, groupRepo),
		Vehicles: service.NewVehicleService(vehicleRepo, groupRepo),
		Groups:   service.NewGroupService(groupRepo, userRepo),
	}

	apiServer := server.NewServer(*cfg, dbService, tokens, userRepo, services)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, done)

	slog.Info("starting server", "addr", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("graceful shutdown complete")
}
