// Package database contiene los almacenes de registros de personas: el
// archivo CSV local y la tabla remota en Postgres.
package database

import (
	"context"

	"github.com/lizet96/registro-personas/models"
)

// Almacen es el almacén durable de personas. La capa de registro depende
// solo de esta interfaz.
type Almacen interface {
	// Listar devuelve la colección completa
	Listar(ctx context.Context) ([]models.Persona, error)
	// Obtener busca por id exacto; devuelve models.ErrNoEncontrado si no existe
	Obtener(ctx context.Context, id int) (models.Persona, error)
	// Insertar guarda la persona y devuelve el id asignado
	Insertar(ctx context.Context, p models.Persona) (int, error)
	// Actualizar aplica los cambios; false si el id no existe
	Actualizar(ctx context.Context, id int, cambios models.CambiosPersona) (bool, error)
	// Eliminar borra el registro; false si el id no existe
	Eliminar(ctx context.Context, id int) (bool, error)
}
