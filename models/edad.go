package models

import (
	"fmt"
	"time"
)

// FormatoFecha es el único formato aceptado para fecha_nacimiento
const FormatoFecha = "2006-01-02"

// Hoy devuelve la fecha local del sistema. Se reemplaza en pruebas.
var Hoy = time.Now

// CalcularEdad devuelve los años cumplidos entre la fecha de nacimiento y hoy.
// El año en curso solo cuenta cuando ya pasó el mes y día de nacimiento.
func CalcularEdad(fecha string, hoy time.Time) (int, error) {
	nacimiento, err := time.Parse(FormatoFecha, fecha)
	if err != nil {
		return 0, fmt.Errorf("%w: %q no tiene el formato YYYY-MM-DD", ErrFechaInvalida, fecha)
	}

	edad := hoy.Year() - nacimiento.Year()
	if hoy.Month() < nacimiento.Month() ||
		(hoy.Month() == nacimiento.Month() && hoy.Day() < nacimiento.Day()) {
		edad--
	}
	if edad < 0 {
		return 0, fmt.Errorf("%w: %q es posterior a la fecha actual", ErrFechaInvalida, fecha)
	}
	return edad, nil
}

// EdadActual calcula la edad usando la fecha local del sistema
func EdadActual(fecha string) (int, error) {
	return CalcularEdad(fecha, Hoy())
}
