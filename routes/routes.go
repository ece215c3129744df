package routes

import (
	"time"

	_ "github.com/Dosada05/doubles-tournament/docs"
	"github.com/Dosada05/doubles-tournament/handlers"
	"github.com/Dosada05/doubles-tournament/middleware"
	"github.com/Dosada05/doubles-tournament/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Schedule   *handlers.ScheduleHandler
	Match      *handlers.MatchHandler
	Standings  *handlers.StandingsHandler
	Playoff    *handlers.PlayoffHandler
	Export     *handlers.ExportHandler
	WebSocket  *handlers.WebSocketHandler
	Health     *handlers.HealthHandler
	User       *handlers.UserHandler
}

type Options struct {
	JWTSecret          string
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", h.Health.Health)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	// Websocket upgrades bypass the rate limiter.
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Group(func(r chi.Router) {
		if opts.RateLimitRequests > 0 && opts.RateLimitWindow > 0 {
			r.Use(middleware.RateLimit(opts.RateLimitRequests, opts.RateLimitWindow))
		}

		r.Post("/auth/login", h.Auth.Login)

		// Публичные маршруты
		r.Get("/tournaments", h.Tournament.ListHandler)
		r.Get("/tournaments/{tournamentID}", h.Tournament.GetHandler)
		r.Get("/tournaments/{tournamentID}/teams", h.Team.ListTeams)
		r.Get("/tournaments/{tournamentID}/matches", h.Match.ListMatches)
		r.Get("/tournaments/{tournamentID}/standings", h.Standings.GetStandings)
		r.Get("/matches/{matchID}", h.Match.GetMatch)
		r.Get("/teams/{teamID}", h.Team.GetTeam)

		// Только для администраторов
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.JWTSecret))
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Post("/tournaments", h.Tournament.CreateHandler)
			r.Put("/tournaments/{tournamentID}", h.Tournament.UpdateHandler)
			r.Delete("/tournaments/{tournamentID}", h.Tournament.DeleteHandler)
			r.Post("/tournaments/{tournamentID}/teams", h.Team.CreateTeams)
			r.Put("/teams/{teamID}", h.Team.UpdateTeam)
			r.Delete("/teams/{teamID}", h.Team.DeleteTeam)
			r.Post("/tournaments/{tournamentID}/schedule", h.Schedule.Regenerate)
			r.Put("/tournaments/{tournamentID}/matches", h.Match.BulkUpdate)
			r.Post("/tournaments/{tournamentID}/matches", h.Match.CreateMatch)
			r.Put("/matches/{matchID}", h.Match.UpdateMatch)
			r.Delete("/matches/{matchID}", h.Match.DeleteMatch)
			r.Post("/tournaments/{tournamentID}/playoffs/semifinals", h.Playoff.SeedSemifinals)
			r.Post("/tournaments/{tournamentID}/playoffs/final", h.Playoff.SeedFinal)
			r.Post("/tournaments/{tournamentID}/export", h.Export.Export)

			r.Get("/users", h.User.ListUsers)
			r.Get("/users/{userID}", h.User.GetUser)
			r.Patch("/users/{userID}", h.User.UpdateUser)
		})
	})
}
