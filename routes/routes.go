package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kenyapadelscore/padelscore/handlers"
	"github.com/kenyapadelscore/padelscore/middleware"
	"github.com/kenyapadelscore/padelscore/models"
)

// SetupRoutes wires the REST surface and the websocket endpoint onto the
// router.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	matchHandler *handlers.MatchHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/auth/login", authHandler.Login)
		r.With(authenticate, middleware.Authorize(models.RoleAdmin)).Post("/users", authHandler.Register)

		r.Route("/matches", func(r chi.Router) {
			// Public read access for live scoreboards.
			r.Get("/", matchHandler.ListMatchesHandler)
			r.Get("/{matchID}", matchHandler.GetMatchHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.With(middleware.Authorize(models.RoleAdmin)).Post("/", matchHandler.CreateMatchHandler)
				r.With(middleware.Authorize(models.RoleAdmin)).Put("/{matchID}", matchHandler.UpdateMatchHandler)
				r.With(middleware.Authorize(models.RoleAdmin, models.RoleReferee)).Put("/{matchID}/score", matchHandler.UpdateScoreHandler)
			})
		})

		r.Get("/dashboard/stats", dashboardHandler.Stats)
	})

	router.Get("/ws", webSocketHandler.ServeWs)
}
