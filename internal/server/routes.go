package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/homeboard/homeboard-backend/internal/auth"
	"github.com/homeboard/homeboard-backend/internal/domain"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", auth.HeaderRefreshToken},
		ExposedHeaders:   []string{"Authorization", auth.HeaderRefreshToken},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.helloHandler)
	r.Get("/ping", s.pingHandler)
	r.Get("/health", s.healthHandler)

	// open endpoints
	r.Post("/auth/login", s.loginHandler)
	r.Post("/users", s.registerHandler)
	r.Post("/users/reset-password", s.resetPasswordHandler)

	// everything below requires a connected user
	authed := s.tokens.Middleware(s.userRepo)

	r.Group(func(r chi.Router) {
		r.Use(authed)

		r.Post("/auth/change-password", s.changePasswordHandler)
		r.Get("/users/search", s.searchUsersHandler)

		entityRoutes(r, "/todos", entityHandlers{
			upsert: s.upsertTodoHandler, edit: s.editTodoHandler,
			get: s.getTodoHandler, list: s.listTodosHandler,
			del: s.deleteTodoHandler, multiDel: s.multiDeleteTodosHandler,
		})
		entityRoutes(r, "/notes", entityHandlers{
			upsert: s.upsertNoteHandler, edit: s.editNoteHandler,
			get: s.getNoteHandler, list: s.listNotesHandler,
			del: s.deleteNoteHandler, multiDel: s.multiDeleteNotesHandler,
		})
		entityRoutes(r, "/cooking-recipes", entityHandlers{
			upsert: s.upsertRecipeHandler, edit: s.editRecipeHandler,
			get: s.getRecipeHandler, list: s.listRecipesHandler,
			del: s.deleteRecipeHandler, multiDel: s.multiDeleteRecipesHandler,
		})
		entityRoutes(r, "/vehicles", entityHandlers{
			upsert: s.upsertVehicleHandler, edit: s.editVehicleHandler,
			get: s.getVehicleHandler, list: s.listVehiclesHandler,
			del: s.deleteVehicleHandler, multiDel: s.multiDeleteVehiclesHandler,
		})
		entityRoutes(r, "/groups", entityHandlers{
			upsert: s.upsertGroupHandler, edit: s.editGroupHandler,
			get: s.getGroupHandler, list: s.listGroupsHandler,
			del: s.deleteGroupHandler, multiDel: s.multiDeleteGroupsHandler,
		})

		// user administration
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(domain.RoleAdmin))
			r.Get("/users", s.listUsersHandler)
			r.Get("/users/{id}", s.getUserHandler)
			r.Patch("/users/{id}", s.editUserHandler)
			r.Delete("/users/{id}", s.deleteUserHandler)
		})
	})

	return r
}

type entityHandlers struct {
	upsert   http.HandlerFunc
	edit     http.HandlerFunc
	get      http.HandlerFunc
	list     http.HandlerFunc
	del      http.HandlerFunc
	multiDel http.HandlerFunc
}

// entityRoutes mounts the uniform CRUD surface every business entity shares.
func entityRoutes(r chi.Router, pattern string, h entityHandlers) {
	r.Route(pattern, func(r chi.Router) {
		r.Post("/", h.upsert)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Patch("/{id}", h.edit)
		r.Delete("/{id}", h.del)
		r.Delete("/", h.multiDel)
	})
}
