package main

import (
	"log"

	_ "todolist/docs"
	"todolist/internal/config"
	"todolist/internal/server"
)

// @title           Nested To-Do API
// @version         1.0
// @description     Multi-user to-do lists with task groups and nested subtasks.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name todo_session
// @description Session cookie established by POST /login.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
