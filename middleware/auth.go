package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims personalizados para el JWT de la API
type Claims struct {
	Sujeto string `json:"sujeto"`
	jwt.RegisteredClaims
}

// GenerarJWT firma un token para el sujeto con la duración indicada
func GenerarJWT(secreto []byte, sujeto string, duracion time.Duration) (string, error) {
	ahora := time.Now()
	claims := Claims{
		Sujeto: sujeto,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sujeto,
			ExpiresAt: jwt.NewNumericDate(ahora.Add(duracion)),
			IssuedAt:  jwt.NewNumericDate(ahora),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secreto)
}

// JWTMiddleware valida el token Bearer y guarda el sujeto en c.Locals("sujeto")
func JWTMiddleware(secreto []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token de autorización requerido",
			})
		}

		// Verificar que el token tenga el formato "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Formato de token inválido",
			})
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return secreto, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Claims inválidos",
			})
		}

		c.Locals("sujeto", claims.Sujeto)
		return c.Next()
	}
}
