package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/registro-personas/middleware"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

// SolicitudToken es el cuerpo de POST /auth/token
type SolicitudToken struct {
	APIKey   string `json:"api_key"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// Auth emite tokens JWT a quien presente la clave de la API
type Auth struct {
	hashClave  []byte
	totpSecret string
	secretoJWT []byte
	duracion   time.Duration
}

// NuevoAuth crea el handler. totpSecret vacío desactiva el segundo factor.
func NuevoAuth(hashClave, totpSecret string, secretoJWT []byte, duracion time.Duration) *Auth {
	return &Auth{
		hashClave:  []byte(hashClave),
		totpSecret: totpSecret,
		secretoJWT: secretoJWT,
		duracion:   duracion,
	}
}

// EmitirToken valida la clave (y el código TOTP si está configurado) y
// devuelve un token de acceso
func (h *Auth) EmitirToken(c *fiber.Ctx) error {
	var req SolicitudToken
	if err := c.BodyParser(&req); err != nil || req.APIKey == "" {
		return responderError(c, fiber.StatusBadRequest, CodigoErrorAuth, "Datos inválidos")
	}

	if err := bcrypt.CompareHashAndPassword(h.hashClave, []byte(req.APIKey)); err != nil {
		return responderError(c, fiber.StatusUnauthorized, CodigoErrorAuth, "Credenciales inválidas")
	}

	if h.totpSecret != "" && !totp.Validate(req.TOTPCode, h.totpSecret) {
		return responderError(c, fiber.StatusUnauthorized, CodigoErrorAuth, "Código de verificación inválido")
	}

	token, err := middleware.GenerarJWT(h.secretoJWT, "api", h.duracion)
	if err != nil {
		return responderError(c, fiber.StatusInternalServerError, CodigoErrorAuth, "Error al generar token")
	}

	return responder(c, fiber.StatusOK, CodigoTokenEmitido, fiber.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.duracion.Seconds()),
	})
}
