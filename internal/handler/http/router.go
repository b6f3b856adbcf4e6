package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/lumaclean/wfm-backend-go/internal/handler/http/middleware"
	"github.com/lumaclean/wfm-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AppEnv         string
	FrontendOrigin string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	catalogHandler CatalogHandler,
	employeeHandler EmployeeHandler,
	timesheetHandler TimesheetHandler,
	reportHandler ReportHandler,
	ticketHandler TicketHandler,
	ratingHandler RatingHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "wfm-lumaclean"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.AppEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", catalogHandler.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/{type}", catalogHandler.Replace)
					r.Post("/refresh", catalogHandler.Refresh)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				// Badge is self-or-admin, checked in the handler.
				r.Get("/{id}/badge", employeeHandler.Badge)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", employeeHandler.List)
					r.Put("/", employeeHandler.Upsert)
					r.Delete("/{id}", employeeHandler.Remove)
				})
			})

			r.Route("/timesheet", func(r chi.Router) {
				r.Get("/", timesheetHandler.GetRange)
				r.Get("/{date}", timesheetHandler.GetDay)
				r.Post("/{date}", timesheetHandler.SubmitDay)
			})

			// Admin only
			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/monthly", reportHandler.Monthly)
				r.Get("/monthly/export", reportHandler.MonthlyExport)
				r.Get("/annual", reportHandler.Annual)
				r.Delete("/annual/cache", reportHandler.ClearAnnualCache)
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/{date}", ticketHandler.ListForDate)
				r.Put("/{date}/{siteKey}", ticketHandler.Upsert)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", ratingHandler.ListProducts)
				r.Get("/{productID}/ratings", ratingHandler.RatingSummary)
				r.Put("/{productID}/ratings", ratingHandler.SubmitRating)
			})
		})
	})
	return r
}
