package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api"
	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/handler"
	apimiddleware "github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/middleware"
	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/api/router"
	"github.com/anniehongsk/RIT-Marketplace/internal/adapter/repository"
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/service"
	"github.com/anniehongsk/RIT-Marketplace/internal/infrastructure/auth"
	"github.com/anniehongsk/RIT-Marketplace/internal/infrastructure/websocket"
	"github.com/anniehongsk/RIT-Marketplace/internal/usecase"
	"github.com/anniehongsk/RIT-Marketplace/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewPostgresUserRepository(pool)
	productRepo := repository.NewPostgresProductRepository(pool)
	chatRepo := repository.NewPostgresChatRepository(pool)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	registry := websocket.NewRegistry()

	chatTransaction := service.NewChatTransaction(service.DefaultPolicy())

	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService)
	userUseCase := usecase.NewUserUseCase(userRepo)
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, productRepo, chatTransaction, registry)

	wsRouter := websocket.NewRouter(registry, chatUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(jwtService)

	authHandler := handler.NewAuthHandler(authUseCase)
	userHandler := handler.NewUserHandler(userUseCase)
	productHandler := handler.NewProductHandler(productUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	wsHandler := handler.NewWebSocketHandler(wsRouter, jwtService)

	router.Setup(e, authMiddleware, authHandler, userHandler, productHandler, chatHandler, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
