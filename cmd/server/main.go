package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"hometasks/docs"
	"hometasks/internal/auth"
	"hometasks/internal/cache"
	"hometasks/internal/config"
	"hometasks/internal/db"
	"hometasks/internal/handler"
	"hometasks/internal/repository"
	"hometasks/internal/router"
	"hometasks/internal/service"
)

// @title Home Tasks API
// @version 1.0
// @description Household accounts with family members, their to-do lists and calendar events.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg := config.Load()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			log.Printf("Warning: reset failed: %v", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	store := repository.NewStore(gormDB)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	userService := service.NewUserService(store, hasher, cacheClient)
	memberService := service.NewMemberService(store, cacheClient)
	itemService := service.NewItemService(store, cacheClient)
	eventService := service.NewEventService(store, cacheClient)

	e := echo.New()
	e.HideBanner = true
	router.Register(
		e,
		cfg,
		handler.NewUserHandler(userService),
		handler.NewMemberHandler(memberService),
		handler.NewItemHandler(itemService),
		handler.NewEventHandler(eventService),
	)

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
		docs.SwaggerInfo.Host = host
		swaggerURL = "http://" + host + "/swagger/index.html"
		if strings.HasPrefix(cfg.SwaggerHost, "https://") {
			swaggerURL = "https://" + host + "/swagger/index.html"
		}
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	go func() {
		addr := ":" + cfg.ServerPort
		log.Printf("listening on %s (db driver %s)", addr, cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("server exited")
}
