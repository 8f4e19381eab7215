package middleware

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// HeaderRequestID es el header con el identificador de la petición
const HeaderRequestID = "X-Request-ID"

// LoggingMiddleware registra cada petición HTTP con zap. Asigna un
// identificador a la petición si el cliente no envía uno.
func LoggingMiddleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)
		c.Locals("request_id", requestID)

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler escriba la respuesta antes de leer el status
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		campos := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		}
		if sujeto, ok := c.Locals("sujeto").(string); ok {
			campos = append(campos, zap.String("sujeto", sujeto))
		}
		if log.Core().Enabled(zapcore.DebugLevel) && len(c.Body()) > 0 {
			campos = append(campos, zap.String("body", filterSensitiveData(string(c.Body()))))
		}

		if ce := log.Check(determineLogLevel(status), "petición HTTP"); ce != nil {
			ce.Write(campos...)
		}
		return nil
	}
}

// filterSensitiveData oculta credenciales del body y lo trunca
func filterSensitiveData(body string) string {
	sensitiveFields := []string{"api_key", "totp_code", "token", "access_token"}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return truncar(body)
	}
	for _, field := range sensitiveFields {
		if _, exists := data[field]; exists {
			data[field] = "[FILTERED]"
		}
	}
	filtrado, _ := json.Marshal(data)
	return truncar(string(filtrado))
}

func truncar(s string) string {
	if len(s) > 1000 {
		return s[:1000] + "...[truncated]"
	}
	return s
}

// determineLogLevel determina el nivel de log basado en el status code
func determineLogLevel(statusCode int) zapcore.Level {
	switch {
	case statusCode >= 500:
		return zapcore.ErrorLevel
	case statusCode >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
