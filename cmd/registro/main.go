package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lizet96/registro-personas/config"
	"github.com/lizet96/registro-personas/consola"
	"github.com/lizet96/registro-personas/database"
	"github.com/lizet96/registro-personas/logger"
	"github.com/lizet96/registro-personas/registro"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintln(os.Stderr, "No se pudo iniciar la aplicación debido a un error de conexión o configuración.")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Cargar()
	if err != nil {
		return err
	}

	log, err := logger.Nuevo(cfg.LogLevel, cfg.Environment, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	almacen, err := database.Abrir(ctx, cfg, log)
	if err != nil {
		log.Error("no se pudo abrir el almacén", zap.String("backend", cfg.Backend), zap.Error(err))
		return err
	}
	defer almacen.Cerrar()
	log.Info("registro iniciado", zap.String("almacen", almacen.Descripcion))

	servicio := registro.NuevoServicio(almacen.Almacen, log)
	menu := consola.NuevoMenuRegistro(consola.NuevaTerminal(os.Stdin, os.Stdout), servicio, almacen.Descripcion)
	return menu.Ejecutar(ctx)
}
