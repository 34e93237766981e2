package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const requestIDKey = "request_id"

// RequestIDMiddleware присваивает каждому запросу идентификатор.
// Входящий X-Request-ID сохраняется, иначе генерируется новый.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)

			return next(c)
		}
	}
}

// LoggingMiddleware добавляет структурированное логирование
func LoggingMiddleware(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Выполняем запрос
			err := next(c)

			// Логируем детали запроса
			latency := time.Since(start)
			status := c.Response().Status

			entry := logger.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"uri":        c.Request().URL.Path,
				"status":     status,
				"latency":    latency,
				"user_agent": c.Request().UserAgent(),
				"ip":         c.RealIP(),
			})

			if reqID, ok := c.Get(requestIDKey).(string); ok && reqID != "" {
				entry = entry.WithField("request_id", reqID)
			}

			if err != nil {
				entry = entry.WithField("error", err.Error())
			}

			if status >= 500 {
				entry.Error("Server error")
			} else if status >= 400 {
				entry.Warn("Client error")
			} else {
				entry.Info("Request processed")
			}

			return err
		}
	}
}
