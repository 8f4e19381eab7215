// Package config lee la configuración desde variables de entorno y un
// archivo .env opcional.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Tipos de almacén
const (
	BackendCSV    = "csv"
	BackendRemoto = "remoto"
)

// Ambientes
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTesting     = "testing"
)

// Config contiene toda la configuración en tiempo de ejecución
type Config struct {
	Backend     string
	ArchivoCSV  string
	DatabaseURL string
	Tabla       string

	LogLevel    string
	LogFile     string
	Environment string

	// API
	Port          string
	JWTSecret     string
	JWTExpiracion time.Duration
	APIKeyHash    string
	TOTPSecret    string
}

// Cargar lee el archivo .env si existe y luego las variables de entorno.
// La falta del archivo .env no es un error.
func Cargar(archivos ...string) (*Config, error) {
	if err := godotenv.Load(archivos...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error al leer el archivo .env: %w", err)
	}
	return DesdeEntorno()
}

// DesdeEntorno construye la configuración solo con variables de entorno
func DesdeEntorno() (*Config, error) {
	cfg := &Config{
		Backend:     strings.ToLower(valor("REGISTRO_BACKEND", BackendCSV)),
		ArchivoCSV:  valor("REGISTRO_ARCHIVO_CSV", "registro_personas.csv"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Tabla:       valor("REGISTRO_TABLA", "personas"),
		LogLevel:    valor("LOG_LEVEL", "info"),
		LogFile:     valor("LOG_FILE", "registro.log"),
		Environment: valor("ENVIRONMENT", EnvironmentDevelopment),
		Port:        valor("PORT", "3000"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		APIKeyHash:  os.Getenv("API_KEY_HASH"),
		TOTPSecret:  os.Getenv("TOTP_SECRET"),
	}

	exp, err := time.ParseDuration(valor("JWT_EXPIRACION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRACION inválida: %w", err)
	}
	cfg.JWTExpiracion = exp

	switch cfg.Backend {
	case BackendCSV, BackendRemoto:
	default:
		return nil, fmt.Errorf("REGISTRO_BACKEND desconocido: %q (use %q o %q)", cfg.Backend, BackendCSV, BackendRemoto)
	}
	return cfg, nil
}

// ValidarAlmacen comprueba lo necesario para abrir el almacén elegido
func (c *Config) ValidarAlmacen() error {
	if c.Backend == BackendRemoto && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL es requerida cuando REGISTRO_BACKEND=remoto")
	}
	if c.Backend == BackendCSV && c.ArchivoCSV == "" {
		return errors.New("REGISTRO_ARCHIVO_CSV no puede estar vacía")
	}
	return nil
}

// ValidarAPI comprueba lo necesario para servir la API HTTP
func (c *Config) ValidarAPI() error {
	if err := c.ValidarAlmacen(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET es requerida para la API")
	}
	if c.APIKeyHash == "" {
		return errors.New("API_KEY_HASH es requerida para la API (genérela con cmd/genhash)")
	}
	return nil
}

func valor(clave, porDefecto string) string {
	if v := strings.TrimSpace(os.Getenv(clave)); v != "" {
		return v
	}
	return porDefecto
}
