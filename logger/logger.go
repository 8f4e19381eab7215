// Package logger construye el *zap.Logger de cada ejecutable.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Nuevo crea un logger de producción con el nivel y las salidas indicadas.
// Sin salidas escribe en stderr.
func Nuevo(nivel, ambiente string, salidas ...string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(nivel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL inválido %q: %w", nivel, err)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if len(salidas) > 0 {
		config.OutputPaths = salidas
		config.ErrorOutputPaths = salidas
	}
	config.InitialFields = map[string]interface{}{"environment": ambiente}

	log, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
