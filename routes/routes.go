package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lizet96/registro-personas/handlers"
	"github.com/lizet96/registro-personas/middleware"
	"go.uber.org/zap"
)

// Dependencias agrupa lo que necesitan las rutas
type Dependencias struct {
	Personas   *handlers.Personas
	Auth       *handlers.Auth
	SecretoJWT []byte
	Log        *zap.Logger
	Version    string
}

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(app *fiber.App, deps Dependencias) {
	// Middleware global
	app.Use(middleware.LoggingMiddleware(deps.Log))
	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.BodySizeLimit(64 * 1024))

	// Ruta de salud del sistema
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Registro de personas API",
			"version": deps.Version,
		})
	})

	api := app.Group("/api/v1")

	// === RUTAS PÚBLICAS ===
	auth := api.Group("/auth", middleware.RateLimiter(middleware.LimiteAuth))
	auth.Post("/token", deps.Auth.EmitirToken)

	// === RUTAS PROTEGIDAS ===
	personas := api.Group("/personas", middleware.JWTMiddleware(deps.SecretoJWT), middleware.RateLimiter(middleware.LimitePersonas))
	personas.Get("/", deps.Personas.ObtenerPersonas)
	personas.Post("/", deps.Personas.CrearPersona)
	personas.Get("/:id", deps.Personas.ObtenerPersonaPorID)
	personas.Put("/:id", deps.Personas.ActualizarPersona)
	personas.Delete("/:id", deps.Personas.EliminarPersona)
}
