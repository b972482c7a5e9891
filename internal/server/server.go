package server

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/homeboard/homeboard-backend/internal/auth"
	"github.com/homeboard/homeboard-backend/internal/config"
	"github.com/homeboard/homeboard-backend/internal/database"
	"github.com/homeboard/homeboard-backend/internal/repository"
	"github.com/homeboard/homeboard-backend/internal/service"
)

// Services bundles the application services the HTTP layer dispatches to.
type Services struct {
	Auth     service.AuthService
	Users    service.UserService
	Todos    service.TodoService
	Notes    service.NoteService
	Recipes  service.RecipeService
	Vehicles service.VehicleService
	Groups   service.GroupService
}

type Server struct {
	db       database.Service
	tokens   *auth.TokenManager
	userRepo repository.UserRepository

	auth     service.AuthService
	users    service.UserService
	todos    service.TodoService
	notes    service.NoteService
	recipes  service.RecipeService
	vehicles service.VehicleService
	groups   service.GroupService
}

func NewServer(cfg config.Config, db database.Service, tokens *auth.TokenManager, userRepo repository.UserRepository, svcs Services) *http.Server {
	appServer := &Server{
		db:       db,
		tokens:   tokens,
		userRepo: userRepo,
		auth:     svcs.Auth,
		users:    svcs.Users,
		todos:    svcs.Todos,
		notes:    svcs.Notes,
		recipes:  svcs.Recipes,
		vehicles: svcs.Vehicles,
		groups:   svcs.Groups,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
