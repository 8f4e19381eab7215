package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lizet96/registro-personas/models"
	"go.uber.org/zap"
)

// Conectar crea el pool de conexiones hacia la tabla remota. El pool se
// construye una sola vez y se reutiliza en todas las operaciones.
func Conectar(ctx context.Context, url string, log *zap.Logger) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL no está configurada", models.ErrAlmacen)
	}
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("%w: error al parsear la URL de la base de datos: %w", models.ErrAlmacen, err)
	}
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30
	// Los poolers de los servicios alojados no soportan sentencias preparadas
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: error al crear el pool de conexiones: %w", models.ErrAlmacen, err)
	}

	// Probar si la base de datos está viva haciendo una consulta rápida
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var version string
	if err := pool.QueryRow(pingCtx, "SELECT version()").Scan(&version); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: error al probar la conexión: %w", models.ErrAlmacen, err)
	}

	log.Info("conectado a la base de datos", zap.String("version", version))
	return pool, nil
}
