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

	"github.com/sekurindo/secops-backend-go/internal/domain/employee"
	"github.com/sekurindo/secops-backend-go/internal/handler/http/middleware"
	"github.com/sekurindo/secops-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	employeeRepo employee.EmployeeRepository,
	uploadsDir string,
	authHandler AuthHandler,
	patrolHandler PatrolHandler,
	incidentHandler IncidentHandler,
	checkpointHandler CheckpointHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "secops-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Evidence photos are served straight from local storage.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			// Field and monitoring endpoints need an employee profile
			r.Group(func(r chi.Router) {
				r.Use(middleware.EmployeeRequired(employeeRepo))

				r.Route("/patrols", func(r chi.Router) {
					r.Get("/", patrolHandler.Index)
					r.Post("/start", patrolHandler.Start)
					r.Get("/monitoring", patrolHandler.Monitoring)
					r.Get("/checkpoints", patrolHandler.Checkpoints)

					r.Route("/{patrolID}", func(r chi.Router) {
						r.Get("/", patrolHandler.Show)
						r.Post("/visit", patrolHandler.Visit)
						r.Post("/complete", patrolHandler.Complete)
						r.Post("/file", patrolHandler.UploadEvidence)
					})
				})

				r.Route("/incidents", func(r chi.Router) {
					r.Get("/", incidentHandler.Index)
					r.Post("/", incidentHandler.Create)

					r.Route("/{incidentID}", func(r chi.Router) {
						r.Get("/", incidentHandler.Show)
						r.Patch("/status", incidentHandler.UpdateStatus)
					})
				})
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/projects/{projectID}/checkpoints", func(r chi.Router) {
					r.Get("/", checkpointHandler.Index)
					r.Post("/", checkpointHandler.Create)
				})
				r.Put("/checkpoints/{checkpointID}", checkpointHandler.Update)
			})
		})
	})
	return r
}
