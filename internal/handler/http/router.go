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
	"github.com/teamtrackhq/teamtrack-backend-go/internal/config"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/handler/http/middleware"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Attendance AttendanceHandler
	Update     UpdateHandler
	Project    ProjectHandler
	Leave      LeaveHandler
	Chat       ChatHandler
	Report     ReportHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "teamtrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

	// Locally stored uploads served as static files.
	uploadsDir := http.Dir(cfg.Storage.BasePath)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsDir)))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
				r.Get("/callback/google", h.Auth.OAuthCallbackGoogle)
			})
		})

		// Chat stream authenticates itself with a query-param token.
		r.Get("/chat/stream", h.Chat.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.GetMe)
				r.Put("/me", h.User.UpdateProfile)
				r.Post("/me/avatar", h.User.UploadAvatar)
				r.Get("/me/dashboard", h.User.GetDashboard)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.User.ListAll)
					r.Get("/team", h.User.ListTeam)
					r.Put("/{userID}/team", h.User.AssignTeam)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch-in", h.Attendance.PunchIn)
				r.Post("/punch-out", h.Attendance.PunchOut)
				r.Get("/today", h.Attendance.GetToday)
				r.Get("/history", h.Attendance.GetMyHistory)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/employees/{userID}", h.Attendance.GetEmployeeHistory)
				})
			})

			r.Route("/updates", func(r chi.Router) {
				r.Post("/", h.Update.Submit)
				r.Get("/mine", h.Update.ListMine)
				r.Get("/{updateID}", h.Update.Get)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", h.Update.ListAll)
					r.Post("/{updateID}/review", h.Update.Review)
					r.Get("/summary/{userID}", h.Update.Summary)
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/mine", h.Project.ListMyProjects)
				r.Get("/{projectID}", h.Project.GetProject)
				r.Patch("/{projectID}/status", h.Project.UpdateProjectStatus)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Project.CreateProject)
					r.Get("/created", h.Project.ListCreatedProjects)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/mine", h.Project.ListMyTasks)
				r.Get("/{taskID}", h.Project.GetTask)
				r.Patch("/{taskID}/status", h.Project.UpdateTaskStatus)
				r.Post("/{taskID}/comments", h.Project.AddTaskComment)

				// Manager or team lead
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAssigner)
					r.Post("/", h.Project.CreateTask)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", h.Leave.Submit)
				r.Get("/mine", h.Leave.ListMine)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/pending", h.Leave.ListPending)
					r.Post("/{leaveID}/review", h.Leave.Review)
				})
			})

			r.Route("/chat", func(r chi.Router) {
				r.Post("/messages", h.Chat.Send)
				r.Get("/messages/{peerID}", h.Chat.History)
				r.Post("/files", h.Chat.UploadFile)
				r.Get("/token", h.Chat.GetStreamToken)
			})

			// Manager only
			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/attendance/{userID}", h.Report.MonthlyAttendance)
				r.Get("/attendance/{userID}/download", h.Report.DownloadMonthlyAttendance)
			})
		})
	})

	return r
}
