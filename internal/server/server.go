package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todolist/internal/config"
	"todolist/internal/handler"
	"todolist/internal/middleware"
	"todolist/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Bring the schema up to date before opening the pool
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Database schema up to date")

	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	// Setup Gin
	r := gin.Default()

	// Cookie-backed sessions hold the user identity and the CSRF token
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("todo_session", store))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewTaskGroupRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	groupHandler := handler.NewGroupHandler(groupRepo, taskRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, groupRepo)

	// Public routes
	r.GET("/register", userHandler.RegisterForm)
	r.POST("/register", userHandler.Register)
	r.GET("/login", userHandler.LoginForm)
	r.POST("/login", userHandler.Login)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require a logged-in session; every mutation must
	// carry the session's CSRF token
	authorized := r.Group("/")
	authorized.Use(middleware.SessionAuthMiddleware())
	authorized.Use(middleware.CSRFMiddleware())
	{
		authorized.GET("/logout", userHandler.Logout)

		// Task group routes
		authorized.GET("/", groupHandler.Dashboard)
		authorized.GET("/create_task_group", groupHandler.CreateForm)
		authorized.POST("/create_task_group", groupHandler.Create)
		authorized.POST("/delete_task_group/:group_id", groupHandler.Delete)

		// Task routes
		authorized.GET("/task_groups/:group_id/add_task", taskHandler.AddTaskForm)
		authorized.POST("/task_groups/:group_id/add_task", taskHandler.AddTask)
		authorized.GET("/tasks/:task_id/add_subtask", taskHandler.AddSubtaskForm)
		authorized.POST("/tasks/:task_id/add_subtask", taskHandler.AddSubtask)
		authorized.POST("/tasks/:task_id/delete", taskHandler.Delete)
		authorized.POST("/tasks/:task_id/toggle", taskHandler.Toggle)
		authorized.POST("/move_task/:task_id", taskHandler.Move)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func runMigrations(cfg *config.Config) error {
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)

	m, err := migrate.New("file://"+cfg.MigrationsDir, dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
