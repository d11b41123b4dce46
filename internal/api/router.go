package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/staylist/staylist-backend/internal/api/handlers"
	"github.com/staylist/staylist-backend/internal/api/httpx"
	"github.com/staylist/staylist-backend/internal/auth"
	"github.com/staylist/staylist-backend/internal/config"
	"github.com/staylist/staylist-backend/internal/middleware"
	"github.com/staylist/staylist-backend/internal/services"
)

func NewRouter(cfg config.Config, tm *auth.TokenManager, us *services.UserService, hs *services.HotelService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"x-access-token", "X-Request-Id"},
		AllowCredentials: true,
	}))

	guard := middleware.NewGuard(tm, us)
	authH := handlers.NewAuthHandler(us)
	hotelH := handlers.NewHotelHandler(hs)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Backend Working"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/refresh", authH.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(guard.Require)
			r.Get("/users", authH.ListUsers)
			r.Get("/users/search", authH.SearchUsers)
			r.Get("/user/{id}", authH.GetUser)
			r.Put("/update/{id}", authH.UpdateUser)
		})
	})

	r.Route("/hotel", func(r chi.Router) {
		r.Get("/search", hotelH.Search)
		r.Get("/", hotelH.List)
		r.Get("/{id}", hotelH.Get)

		r.Group(func(r chi.Router) {
			r.Use(guard.Require)
			r.Post("/", hotelH.Create)
			r.Put("/{id}", hotelH.Update)
			r.Delete("/{id}", hotelH.Delete)
		})
	})

	return r
}
