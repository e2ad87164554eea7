package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/sekurindo/secops-backend-go/internal/config"
	appHTTP "github.com/sekurindo/secops-backend-go/internal/handler/http"
	"github.com/sekurindo/secops-backend-go/internal/pkg/database"
	"github.com/sekurindo/secops-backend-go/internal/pkg/jwt"
	"github.com/sekurindo/secops-backend-go/internal/pkg/storage"
	"github.com/sekurindo/secops-backend-go/internal/repository/postgresql"
	approvalService "github.com/sekurindo/secops-backend-go/internal/service/approval"
	authService "github.com/sekurindo/secops-backend-go/internal/service/auth"
	checkpointService "github.com/sekurindo/secops-backend-go/internal/service/checkpoint"
	"github.com/sekurindo/secops-backend-go/internal/service/file"
	incidentService "github.com/sekurindo/secops-backend-go/internal/service/incident"
	patrolService "github.com/sekurindo/secops-backend-go/internal/service/patrol"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	checkpointRepo := postgresql.NewCheckpointRepository(db)
	patrolRepo := postgresql.NewPatrolRepository(db)
	incidentRepo := postgresql.NewIncidentRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	scopeResolver := approvalService.NewScopeResolver(employeeRepo)

	authSvc := authService.NewAuthService(employeeRepo, userRepo, refreshTokenRepo, jwtService)
	patrolSvc := patrolService.NewPatrolService(patrolRepo, employeeRepo, checkpointRepo, scopeResolver, fileService)
	incidentSvc := incidentService.NewIncidentService(incidentRepo, employeeRepo, scopeResolver, fileService)
	checkpointSvc := checkpointService.NewCheckpointService(projectRepo, checkpointRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	patrolHandler := appHTTP.NewPatrolHandler(patrolSvc)
	incidentHandler := appHTTP.NewIncidentHandler(incidentSvc)
	checkpointHandler := appHTTP.NewCheckpointHandler(checkpointSvc)

	router := appHTTP.NewRouter(
		jwtService,
		employeeRepo,
		cfg.Storage.BasePath,
		authHandler,
		patrolHandler,
		incidentHandler,
		checkpointHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
