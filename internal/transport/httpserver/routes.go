package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripsplit-go/internal/config"
	"tripsplit-go/internal/transport/httpserver/handler"
	authmw "tripsplit-go/internal/transport/httpserver/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.JWTAuth, metrics *authmw.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))
	r.Use(metrics.Middleware)

	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Route("/v1", func(r chi.Router) {
			r.Route("/user", func(r chi.Router) {
				r.Post("/register", handlers.Register)
				r.Post("/login", handlers.Login)

				r.Group(func(r chi.Router) {
					r.Use(auth.Middleware)
					r.Get("/profile", handlers.Profile)
					r.Get("/logout", handlers.Logout)
					r.Get("/all", handlers.ListUsers)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware)

				r.Route("/trip", func(r chi.Router) {
					r.Post("/create", handlers.CreateTrip)
					r.Get("/my-trips", handlers.MyTrips)
					r.Get("/{tripID}/members", handlers.TripMembers)
					r.Post("/{tripID}/add-member", handlers.AddTripMember)
				})

				r.Route("/expense", func(r chi.Router) {
					r.Post("/add/{tripID}", handlers.AddExpense)
					r.Get("/trip/{tripID}", handlers.ListTripExpenses)
					r.Get("/trip/{tripID}/summary", handlers.ExpenseSummary)
				})

				r.Route("/balance", func(r chi.Router) {
					r.Get("/{tripID}/balance", handlers.TripBalances)
					r.Get("/{tripID}/trip-payee", handlers.TripPayees)
				})

				r.Route("/repayment", func(r chi.Router) {
					r.Post("/{tripID}", handlers.RecordRepayment)
					r.Get("/{tripID}", handlers.RepaymentHistory)
				})
			})
		})
	})

	return r
}
