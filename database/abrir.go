package database

import (
	"context"
	"fmt"

	"github.com/lizet96/registro-personas/config"
	"go.uber.org/zap"
)

// Abierto es el almacén elegido por la configuración junto con su cierre
type Abierto struct {
	Almacen     Almacen
	Descripcion string
	cerrar      func()
}

// Cerrar libera los recursos del almacén
func (a *Abierto) Cerrar() {
	if a.cerrar != nil {
		a.cerrar()
	}
}

// Abrir construye una sola vez el almacén indicado por REGISTRO_BACKEND
func Abrir(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Abierto, error) {
	if err := cfg.ValidarAlmacen(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendRemoto:
		pool, err := Conectar(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		tabla, err := NuevaTablaRemota(pool, cfg.Tabla)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if err := tabla.CrearTabla(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &Abierto{
			Almacen:     tabla,
			Descripcion: "tabla remota " + cfg.Tabla,
			cerrar: func() {
				pool.Close()
				log.Info("pool de conexiones cerrado")
			},
		}, nil

	case config.BackendCSV:
		archivo := NuevoArchivoCSV(cfg.ArchivoCSV)
		if err := archivo.Inicializar(); err != nil {
			return nil, err
		}
		return &Abierto{Almacen: archivo, Descripcion: "archivo " + cfg.ArchivoCSV}, nil
	}
	return nil, fmt.Errorf("almacén desconocido: %q", cfg.Backend)
}
