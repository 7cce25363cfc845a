package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/config"
	appHTTP "github.com/teamtrackhq/teamtrack-backend-go/internal/handler/http"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/database"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/email"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/jwt"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/oauth"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/sse"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/storage"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/teamtrackhq/teamtrack-backend-go/internal/service/attendance"
	authService "github.com/teamtrackhq/teamtrack-backend-go/internal/service/auth"
	chatService "github.com/teamtrackhq/teamtrack-backend-go/internal/service/chat"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/service/file"
	leaveService "github.com/teamtrackhq/teamtrack-backend-go/internal/service/leave"
	projectService "github.com/teamtrackhq/teamtrack-backend-go/internal/service/project"
	reportService "github.com/teamtrackhq/teamtrack-backend-go/internal/service/report"
	updateService "github.com/teamtrackhq/teamtrack-backend-go/internal/service/update"
	userService "github.com/teamtrackhq/teamtrack-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	updateRepo := postgresql.NewUpdateRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	messageRepo := postgresql.NewMessageRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

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
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	hub := sse.NewHub()

	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo, googleService)
	userSvc := userService.NewUserService(userRepo, fileService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, cfg)
	updateSvc := updateService.NewUpdateService(updateRepo, projectRepo, userRepo, fileService, emailService)
	projectSvc := projectService.NewProjectService(projectRepo, taskRepo, userRepo, fileService)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, userRepo, emailService)
	chatSvc := chatService.NewChatService(messageRepo, userRepo, hub)
	reportSvc := reportService.NewReportService(attendanceRepo, userRepo)

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		User:       appHTTP.NewUserHandler(userSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Update:     appHTTP.NewUpdateHandler(updateSvc),
		Project:    appHTTP.NewProjectHandler(projectSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Chat:       appHTTP.NewChatHandler(chatSvc, fileService, jwtService),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
