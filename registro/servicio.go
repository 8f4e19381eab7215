// Package registro implementa las operaciones CRUD sobre personas. Depende
// solo de database.Almacen; el almacén concreto se inyecta al construirlo.
package registro

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/lizet96/registro-personas/database"
	"github.com/lizet96/registro-personas/models"
	"go.uber.org/zap"
)

// Servicio agrupa las operaciones del registro de personas
type Servicio struct {
	almacen database.Almacen
	log     *zap.Logger
}

// ResultadoActualizacion describe lo que hizo Actualizar
type ResultadoActualizacion struct {
	Persona models.Persona
	// FechaDescartada indica que la nueva fecha de nacimiento era inválida
	// y se conservó la anterior
	FechaDescartada bool
	// SinCambios indica que no había nada que guardar
	SinCambios bool
}

// NuevoServicio crea el servicio sobre el almacén dado
func NuevoServicio(almacen database.Almacen, log *zap.Logger) *Servicio {
	if log == nil {
		log = zap.NewNop()
	}
	return &Servicio{almacen: almacen, log: log}
}

// Crear valida la fecha de nacimiento, deriva la edad y guarda la persona.
// Cuando el almacén no confirma la fila devuelve id 0 y
// models.ErrSinConfirmacion, que es solo una advertencia.
func (s *Servicio) Crear(ctx context.Context, p models.Persona) (int, error) {
	edad, err := models.EdadActual(p.FechaNacimiento)
	if err != nil {
		return 0, err
	}
	p.ID = 0
	p.Edad = edad

	id, err := s.almacen.Insertar(ctx, p)
	if errors.Is(err, models.ErrSinConfirmacion) {
		s.log.Warn("registro insertado sin confirmación")
		return 0, err
	}
	if err != nil {
		s.log.Error("error al insertar el registro", zap.Error(err))
		return 0, err
	}
	s.log.Info("registro creado", zap.Int("id", id))
	return id, nil
}

// Listar devuelve todos los registros con la edad derivada a la fecha actual
func (s *Servicio) Listar(ctx context.Context) ([]models.Persona, error) {
	personas, err := s.almacen.Listar(ctx)
	if err != nil {
		s.log.Error("error al listar los registros", zap.Error(err))
		return nil, err
	}
	for i := range personas {
		personas[i] = conEdadActual(personas[i])
	}
	return personas, nil
}

// Obtener busca un registro por id
func (s *Servicio) Obtener(ctx context.Context, id int) (models.Persona, error) {
	p, err := s.almacen.Obtener(ctx, id)
	if err != nil {
		return models.Persona{}, err
	}
	return conEdadActual(p), nil
}

// Actualizar aplica una actualización parcial. Los campos ausentes conservan
// su valor. Si la nueva fecha de nacimiento es inválida se descarta solo ese
// campo y se guardan los demás cambios; si es válida se recalcula la edad.
func (s *Servicio) Actualizar(ctx context.Context, id int, cambios models.CambiosPersona) (ResultadoActualizacion, error) {
	if err := cambios.Validar(); err != nil {
		return ResultadoActualizacion{}, err
	}
	cambios = models.CambiosPersona{Valores: maps.Clone(cambios.Valores)}

	actual, err := s.almacen.Obtener(ctx, id)
	if err != nil {
		return ResultadoActualizacion{}, err
	}

	var res ResultadoActualizacion
	if fecha, ok := cambios.Valor(models.CampoFechaNacimiento); ok {
		edad, err := models.EdadActual(fecha)
		if err != nil {
			s.log.Warn("fecha de nacimiento descartada", zap.Int("id", id), zap.String("fecha", fecha))
			cambios.Quitar(models.CampoFechaNacimiento)
			res.FechaDescartada = true
		} else {
			cambios.Edad = &edad
		}
	}

	if cambios.Vacio() {
		res.Persona = actual
		res.SinCambios = true
		return res, nil
	}

	ok, err := s.almacen.Actualizar(ctx, id, cambios)
	if err != nil {
		s.log.Error("error al actualizar el registro", zap.Int("id", id), zap.Error(err))
		return ResultadoActualizacion{}, err
	}
	if !ok {
		return ResultadoActualizacion{}, fmt.Errorf("%w: id %d", models.ErrNoEncontrado, id)
	}
	res.Persona = actual.Aplicar(cambios)
	s.log.Info("registro actualizado", zap.Int("id", id), zap.Strings("campos", cambios.Columnas()))
	return res, nil
}

// Eliminar borra un registro por id
func (s *Servicio) Eliminar(ctx context.Context, id int) error {
	ok, err := s.almacen.Eliminar(ctx, id)
	if err != nil {
		s.log.Error("error al eliminar el registro", zap.Int("id", id), zap.Error(err))
		return err
	}
	if !ok {
		return fmt.Errorf("%w: id %d", models.ErrNoEncontrado, id)
	}
	s.log.Info("registro eliminado", zap.Int("id", id))
	return nil
}

// conEdadActual recalcula la edad para mostrarla; si la fecha guardada no es
// válida se deja la edad almacenada.
func conEdadActual(p models.Persona) models.Persona {
	if edad, err := models.EdadActual(p.FechaNacimiento); err == nil {
		p.Edad = edad
	}
	return p
}
