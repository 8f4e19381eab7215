package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/registro-personas/models"
	"github.com/lizet96/registro-personas/registro"
)

// Personas expone el registro de personas por HTTP
type Personas struct {
	servicio *registro.Servicio
}

// NuevoPersonas crea los handlers sobre el servicio dado
func NuevoPersonas(servicio *registro.Servicio) *Personas {
	return &Personas{servicio: servicio}
}

// CrearPersona crea un nuevo registro; la edad se calcula a partir de la
// fecha de nacimiento y el id lo asigna el almacén
func (h *Personas) CrearPersona(c *fiber.Ctx) error {
	var persona models.Persona
	if err := c.BodyParser(&persona); err != nil {
		return responderError(c, fiber.StatusBadRequest, CodigoErrorCrear, "Datos inválidos")
	}

	id, err := h.servicio.Crear(c.UserContext(), persona)
	switch {
	case errors.Is(err, models.ErrFechaInvalida):
		return responderError(c, fiber.StatusBadRequest, CodigoErrorCrear, "Formato de fecha incorrecto. Use YYYY-MM-DD")
	case errors.Is(err, models.ErrSinConfirmacion):
		return responder(c, fiber.StatusAccepted, CodigoPersonaCreada, fiber.Map{
			"mensaje":     "Registro enviado",
			"advertencia": "El almacén no devolvió el registro insertado",
		})
	case err != nil:
		return responderError(c, fiber.StatusInternalServerError, CodigoErrorCrear, "Error al crear el registro")
	}

	persona, err = h.servicio.Obtener(c.UserContext(), id)
	if err != nil {
		return responder(c, fiber.StatusCreated, CodigoPersonaCreada, fiber.Map{"mensaje": "Registro creado exitosamente", "id": id})
	}
	return responder(c, fiber.StatusCreated, CodigoPersonaCreada, fiber.Map{"mensaje": "Registro creado exitosamente", "id": id}, persona)
}

// ObtenerPersonas devuelve todos los registros
func (h *Personas) ObtenerPersonas(c *fiber.Ctx) error {
	personas, err := h.servicio.Listar(c.UserContext())
	if err != nil {
		return responderError(c, fiber.StatusInternalServerError, CodigoErrorListar, "Error al obtener los registros")
	}
	return responder(c, fiber.StatusOK, CodigoPersonasListadas, fiber.Map{
		"personas": personas,
		"total":    len(personas),
	})
}

// ObtenerPersonaPorID devuelve un registro
func (h *Personas) ObtenerPersonaPorID(c *fiber.Ctx) error {
	id, err := parametroID(c)
	if err != nil {
		return responderError(c, fiber.StatusBadRequest, CodigoErrorObtener, "ID inválido")
	}

	persona, err := h.servicio.Obtener(c.UserContext(), id)
	if errors.Is(err, models.ErrNoEncontrado) {
		return responderError(c, fiber.StatusNotFound, CodigoErrorObtener, "Registro no encontrado")
	}
	if err != nil {
		return responderError(c, fiber.StatusInternalServerError, CodigoErrorObtener, "Error al obtener el registro")
	}
	return responder(c, fiber.StatusOK, CodigoPersonaObtenida, persona)
}

// ActualizarPersona aplica una actualización parcial. El cuerpo es un
// objeto con los campos a cambiar; los valores vacíos se ignoran.
func (h *Personas) ActualizarPersona(c *fiber.Ctx) error {
	id, err := parametroID(c)
	if err != nil {
		return responderError(c, fiber.StatusBadRequest, CodigoErrorActualizar, "ID inválido")
	}

	var cuerpo map[string]string
	if err := c.BodyParser(&cuerpo); err != nil {
		return responderError(c, fiber.StatusBadRequest, CodigoErrorActualizar, "Datos inválidos")
	}
	cambios := models.NuevosCambios()
	for campo, valor := range cuerpo {
		cambios.Poner(campo, valor)
	}

	res, err := h.servicio.Actualizar(c.UserContext(), id, cambios)
	switch {
	case errors.Is(err, models.ErrCampoNoEditable):
		return responderError(c, fiber.StatusBadRequest, CodigoErrorActualizar, err.Error())
	case errors.Is(err, models.ErrNoEncontrado):
		return responderError(c, fiber.StatusNotFound, CodigoErrorActualizar, "Registro no encontrado")
	case err != nil:
		return responderError(c, fiber.StatusInternalServerError, CodigoErrorActualizar, "Error al actualizar el registro")
	}

	mensaje := "Registro actualizado exitosamente"
	if res.SinCambios {
		mensaje = "No se realizaron cambios"
	}
	return responder(c, fiber.StatusOK, CodigoPersonaActualizada, fiber.Map{
		"mensaje":          mensaje,
		"fecha_descartada": res.FechaDescartada,
	}, res.Persona)
}

// EliminarPersona elimina un registro
func (h *Personas) EliminarPersona(c *fiber.Ctx) error {
	id, err := parametroID(c)
	if err != nil {
		return responderError(c, fiber.StatusBadRequest, CodigoErrorEliminar, "ID inválido")
	}

	err = h.servicio.Eliminar(c.UserContext(), id)
	if errors.Is(err, models.ErrNoEncontrado) {
		return responderError(c, fiber.StatusNotFound, CodigoErrorEliminar, "Registro no encontrado")
	}
	if err != nil {
		return responderError(c, fiber.StatusInternalServerError, CodigoErrorEliminar, "Error al eliminar el registro")
	}
	return responder(c, fiber.StatusOK, CodigoPersonaEliminada, fiber.Map{"mensaje": "Registro eliminado exitosamente", "id": id})
}

func parametroID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("id inválido")
	}
	return id, nil
}
