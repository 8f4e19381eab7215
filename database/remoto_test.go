package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/lizet96/registro-personas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNuevaTablaRemota_Nombre(t *testing.T) {
	for _, nombre := range []string{"personas", "Personas_2024", "_tmp"} {
		t.Run(nombre, func(t *testing.T) {
			tabla, err := NuevaTablaRemota(nil, nombre)
			require.NoError(t, err)
			assert.Equal(t, `"`+nombre+`"`, tabla.tabla)
		})
	}
	for _, nombre := range []string{"", "1personas", "personas; DROP TABLE x", "per-sonas", `"personas"`} {
		t.Run("inválido "+nombre, func(t *testing.T) {
			_, err := NuevaTablaRemota(nil, nombre)
			assert.Error(t, err)
		})
	}
}

func TestConstruirInsert(t *testing.T) {
	p := models.Persona{ID: 50, Cedula: "001", Nombre: "Ana", Edad: 36, TelefonoCelular: "829"}

	sql, args := construirInsert(`"personas"`, p)

	assert.Equal(t, `INSERT INTO "personas" (cedula, nombre, apellido, sexo, fecha_nacimiento, edad, ocupacion, empresa, tipo_contrato, es_asegurado, tipo_sangre, direccion, telefono_residencial, telefono_celular) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`, sql)
	require.Len(t, args, 14)
	assert.Equal(t, "001", args[0])
	assert.Equal(t, "Ana", args[1])
	assert.Equal(t, 36, args[5])
	assert.Equal(t, "829", args[13])
	assert.NotContains(t, args, 50, "el id no se envía")
}

func TestConstruirUpdate(t *testing.T) {
	t.Run("solo columnas cambiadas", func(t *testing.T) {
		cambios := models.NuevosCambios()
		cambios.Poner(models.CampoTelefonoCelular, "829")
		cambios.Poner(models.CampoNombre, "Ana")

		sql, args := construirUpdate(`"personas"`, 7, cambios)

		assert.Equal(t, `UPDATE "personas" SET nombre = $1, telefono_celular = $2 WHERE id = $3`, sql)
		assert.Equal(t, []any{"Ana", "829", 7}, args)
	})

	t.Run("con edad recalculada", func(t *testing.T) {
		cambios := models.NuevosCambios()
		cambios.Poner(models.CampoFechaNacimiento, "2000-01-01")
		edad := 26
		cambios.Edad = &edad

		sql, args := construirUpdate(`"personas"`, 3, cambios)

		assert.Equal(t, `UPDATE "personas" SET fecha_nacimiento = $1, edad = $2 WHERE id = $3`, sql)
		assert.Equal(t, []any{"2000-01-01", 26, 3}, args)
	})
}

func TestTablaRemota_SinCambiosNoConsulta(t *testing.T) {
	// db nil: cualquier consulta fallaría con pánico
	tabla, err := NuevaTablaRemota(nil, "personas")
	require.NoError(t, err)

	ok, err := tabla.Actualizar(context.Background(), 1, models.NuevosCambios())
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestTablaRemota_Integracion corre contra una base real solo si
// TEST_DATABASE_URL está configurada.
func TestTablaRemota_Integracion(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no está configurada")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := Conectar(ctx, url, zap.NewNop())
	require.NoError(t, err)
	defer pool.Close()

	nombre := fmt.Sprintf("personas_prueba_%d", time.Now().UnixNano())
	tabla, err := NuevaTablaRemota(pool, nombre)
	require.NoError(t, err)
	require.NoError(t, tabla.CrearTabla(ctx))
	defer func() {
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+tabla.tabla)
	}()

	id, err := tabla.Insertar(ctx, models.Persona{Nombre: "Ana", FechaNacimiento: "1990-05-20", Edad: 36})
	require.NoError(t, err)
	assert.Positive(t, id)

	p, err := tabla.Obtener(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Nombre)
	assert.Equal(t, 36, p.Edad)

	cambios := models.NuevosCambios()
	cambios.Poner(models.CampoApellido, "Pérez")
	ok, err := tabla.Actualizar(ctx, id, cambios)
	require.NoError(t, err)
	assert.True(t, ok)

	personas, err := tabla.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, personas, 1)
	assert.Equal(t, "Pérez", personas[0].Apellido)

	ok, err = tabla.Actualizar(ctx, id+1000, cambios)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = tabla.Eliminar(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = tabla.Obtener(ctx, id)
	assert.ErrorIs(t, err, models.ErrNoEncontrado)
}
