package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularEdad(t *testing.T) {
	hoy := time.Date(2026, time.October, 15, 9, 30, 0, 0, time.Local)

	tests := []struct {
		name  string
		fecha string
		want  int
	}{
		{"nacido hoy", "2026-10-15", 0},
		{"cumpleaños hoy", "1990-10-15", 36},
		{"cumpleaños mañana", "1990-10-16", 35},
		{"cumpleaños ayer", "1990-10-14", 36},
		{"mes posterior", "1990-12-01", 35},
		{"mes anterior", "1990-01-31", 36},
		{"bisiesto", "2000-02-29", 26},
		{"un año menos un día", "2025-10-16", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalcularEdad(tt.fecha, hoy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalcularEdad_FechaInvalida(t *testing.T) {
	hoy := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.Local)

	for _, fecha := range []string{
		"",
		"15/10/1990",
		"90-10-15",
		"1990-13-01",
		"1990-02-30",
		"1990-1-5",
		"hoy",
		" 1990-10-15",
		"2026-10-16",
		"2030-01-01",
	} {
		t.Run(fecha, func(t *testing.T) {
			_, err := CalcularEdad(fecha, hoy)
			assert.ErrorIs(t, err, ErrFechaInvalida)
		})
	}
}

func TestEdadActual_UsaHoy(t *testing.T) {
	original := Hoy
	t.Cleanup(func() { Hoy = original })
	Hoy = func() time.Time { return time.Date(2026, time.October, 15, 0, 0, 0, 0, time.Local) }

	edad, err := EdadActual("2000-10-15")
	require.NoError(t, err)
	assert.Equal(t, 26, edad)
}
