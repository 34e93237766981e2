package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"review-metrics-service/internal/bus"
	"review-metrics-service/internal/config"
	"review-metrics-service/internal/database"
	"review-metrics-service/internal/domain"
	"review-metrics-service/internal/handler"
	"review-metrics-service/internal/repository"
	"review-metrics-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Репозитории
	authorRepo := repository.NewAuthorRepository(db)
	metricsRepo := repository.NewMetricsRepository(db)

	// Use Cases
	eventUC := usecase.NewEventUseCase(authorRepo, logger)
	metricsUC := usecase.NewMetricsUseCase(metricsRepo)

	// Шина событий и подписки обработчиков
	eventBus := bus.New(logger, cfg.BusWorkers, cfg.BusQueueSize)
	eventBus.Subscribe(domain.EventTypeReviewStarted, func(ctx context.Context, e domain.Event) error {
		started, ok := e.(domain.ReviewStarted)
		if !ok {
			return domain.ErrInvalidEventType
		}
		return eventUC.HandleReviewStarted(ctx, started)
	})
	eventBus.Subscribe(domain.EventTypeReviewCompleted, func(ctx context.Context, e domain.Event) error {
		completed, ok := e.(domain.ReviewCompleted)
		if !ok {
			return domain.ErrInvalidEventType
		}
		return eventUC.HandleReviewCompleted(ctx, completed)
	})

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.RequestIDMiddleware())
	e.Use(handler.LoggingMiddleware(logger))

	// Handlers
	apiHandler := handler.NewAPIHandler(eventBus, metricsUC, logger)
	apiHandler.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	// Дожидаемся доставки уже принятых событий
	eventBus.Close()

	logger.Info("Server exited")
}
