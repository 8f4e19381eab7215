package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/registro-personas/config"
	"github.com/lizet96/registro-personas/database"
	"github.com/lizet96/registro-personas/handlers"
	"github.com/lizet96/registro-personas/logger"
	"github.com/lizet96/registro-personas/registro"
	"github.com/lizet96/registro-personas/routes"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Cargar variables de entorno
	cfg, err := config.Cargar()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error al cargar la configuración: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.Nuevo(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error al iniciar el logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.ValidarAPI(); err != nil {
		log.Fatal("configuración incompleta", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	almacen, err := database.Abrir(ctx, cfg, log)
	if err != nil {
		log.Fatal("no se pudo abrir el almacén", zap.Error(err))
	}
	defer almacen.Cerrar()

	servicio := registro.NuevoServicio(almacen.Almacen, log)
	secreto := []byte(cfg.JWTSecret)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
		AppName:               "Registro de Personas API v" + version,
		DisableStartupMessage: true,
	})

	routes.SetupRoutes(app, routes.Dependencias{
		Personas:   handlers.NuevoPersonas(servicio),
		Auth:       handlers.NuevoAuth(cfg.APIKeyHash, cfg.TOTPSecret, secreto, cfg.JWTExpiracion),
		SecretoJWT: secreto,
		Log:        log,
		Version:    version,
	})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Ruta no encontrada",
			"message": "La ruta solicitada no existe en este servidor",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	log.Info("servidor iniciado",
		zap.String("port", cfg.Port),
		zap.String("almacen", almacen.Descripcion),
		zap.String("health", "http://localhost:"+cfg.Port+"/health"))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("el servidor terminó con error", zap.Error(err))
	}
}
