package handlers

import "github.com/gofiber/fiber/v2"

type BodyResponse struct {
	IntCode string        `json:"intCode"`
	Data    []interface{} `json:"data"`
}

type StandardResponse struct {
	StatusCode int          `json:"statusCode"`
	Body       BodyResponse `json:"body"`
}

// Códigos internos de respuesta
const (
	CodigoPersonaCreada      = "S10"
	CodigoPersonasListadas   = "S11"
	CodigoPersonaObtenida    = "S12"
	CodigoPersonaActualizada = "S13"
	CodigoPersonaEliminada   = "S14"
	CodigoTokenEmitido       = "S20"

	CodigoErrorCrear      = "F10"
	CodigoErrorListar     = "F11"
	CodigoErrorObtener    = "F12"
	CodigoErrorActualizar = "F13"
	CodigoErrorEliminar   = "F14"
	CodigoErrorAuth       = "F20"
)

// responder envía la respuesta en el formato estándar
func responder(c *fiber.Ctx, status int, codigo string, data ...interface{}) error {
	if data == nil {
		data = []interface{}{}
	}
	return c.Status(status).JSON(StandardResponse{
		StatusCode: status,
		Body: BodyResponse{
			IntCode: codigo,
			Data:    data,
		},
	})
}

func responderError(c *fiber.Ctx, status int, codigo, mensaje string) error {
	return responder(c, status, codigo, fiber.Map{"error": mensaje})
}
