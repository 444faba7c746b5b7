package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/saaaathvik/consultansease/internal/app"
	"github.com/saaaathvik/consultansease/internal/config"
	"github.com/saaaathvik/consultansease/internal/controllers"
	"github.com/saaaathvik/consultansease/internal/repositories"
	"github.com/saaaathvik/consultansease/internal/services"
	"github.com/saaaathvik/consultansease/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	userRepo := repositories.NewUserRepository(application.DB)

	sheetRepo, err := repositories.NewProjectSheetRepository(context.Background(), cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize spreadsheet client:", err)
	}

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	uploadService, err := services.NewLocalUploadService(cfg.UploadDir)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize upload directory:", err)
	}

	otpStore := services.NewOTPStore()
	mailSender := services.NewSendGridMailSender(cfg)

	authService := services.NewAuthService(userRepo)
	otpService := services.NewOTPService(userRepo, otpStore, mailSender, cfg)
	projectService := services.NewProjectService(sheetRepo, uploadService)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	authController := controllers.NewAuthController(authService, otpService)
	projectController := controllers.NewProjectController(projectService)
	formController := controllers.NewFormController(projectService, uploadService)
	healthController := controllers.NewHealthController(application)

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()

	// Health
	router.HandleFunc("/health", healthController.HealthCheckHandler).Methods("GET")

	// Auth & password reset
	router.HandleFunc("/create-new-user", authController.CreateNewUser).Methods("POST")
	router.HandleFunc("/validate-user", authController.ValidateUser).Methods("POST")
	router.HandleFunc("/get-user", authController.ValidateUser).Methods("POST")
	router.HandleFunc("/request-otp", authController.RequestOTP).Methods("POST")
	router.HandleFunc("/verify-otp", authController.VerifyOTP).Methods("POST")
	router.HandleFunc("/reset-password", authController.ResetPassword).Methods("POST")

	// Project records
	router.HandleFunc("/api", projectController.ListProjects).Methods("GET")
	router.HandleFunc("/api/download", projectController.DownloadProjects).Methods("GET")
	router.HandleFunc("/api/{projectId}", projectController.DeleteProject).Methods("DELETE")

	// Project forms (multipart uploads)
	router.HandleFunc("/forms", formController.CreateProject).Methods("POST")
	router.HandleFunc("/edit/{id}", formController.GetProjectRow).Methods("GET")
	router.HandleFunc("/edit/{id}", formController.UpdateProject).Methods("PUT")

	//----------------------------------------------------------------------
	// Expired-OTP sweep via cron
	//----------------------------------------------------------------------
	c := cron.New()
	_, schErr := c.AddFunc("*/5 * * * *", func() {
		if removed := otpStore.DeleteExpired(time.Now()); removed > 0 {
			utils.Logger.Infof("Swept %d expired OTP entries", removed)
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule OTP sweep job")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
