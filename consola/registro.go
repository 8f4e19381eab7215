package consola

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lizet96/registro-personas/models"
	"github.com/lizet96/registro-personas/registro"
)

// MenuRegistro es el menú CRUD de personas
type MenuRegistro struct {
	term     *Terminal
	servicio *registro.Servicio
	almacen  string
}

// NuevoMenuRegistro crea el menú. almacen describe el almacén en uso y solo
// se muestra en la bienvenida.
func NuevoMenuRegistro(term *Terminal, servicio *registro.Servicio, almacen string) *MenuRegistro {
	return &MenuRegistro{term: term, servicio: servicio, almacen: almacen}
}

// Ejecutar muestra el menú hasta que el usuario elige salir o se acaba la
// entrada. Los errores de cada operación se informan y el menú continúa.
func (m *MenuRegistro) Ejecutar(ctx context.Context) error {
	m.term.Mostrar("\nBienvenido/a al programa de registro de personas (%s)", m.almacen)

	for {
		m.term.Mostrar("")
		m.term.Separador("=", 40)
		m.term.Mostrar("       Sistema CRUD de personas")
		m.term.Separador("=", 40)
		m.term.Mostrar("1. Crear Nuevo Registro")
		m.term.Mostrar("2. Mostrar Todos los Registros")
		m.term.Mostrar("3. Actualizar Registro por ID")
		m.term.Mostrar("4. Eliminar Registro por ID")
		m.term.Mostrar("5. Salir")
		m.term.Separador("-", 40)

		opcion, err := m.term.Preguntar("Favor digite una de las opciones: ")
		if errors.Is(err, io.EOF) {
			m.despedida()
			return nil
		}
		if err != nil {
			return err
		}

		switch opcion {
		case "1":
			err = m.crear(ctx)
		case "2":
			err = m.listar(ctx)
		case "3":
			err = m.actualizar(ctx)
		case "4":
			err = m.eliminar(ctx)
		case "5":
			m.despedida()
			return nil
		default:
			m.term.Mostrar("Opción no válida, debe digitar una de las opciones indicadas en el menú.")
		}
		if errors.Is(err, io.EOF) {
			m.despedida()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *MenuRegistro) despedida() {
	m.term.Mostrar("\nMuchas gracias por utilizar nuestro programa.")
	m.term.Mostrar("JMEP @2025 (All rights reserved)")
}

// crear pide cada campo en orden fijo. La fecha se vuelve a pedir hasta que
// sea válida.
func (m *MenuRegistro) crear(ctx context.Context) error {
	m.term.Mostrar("\n---------- Inserción de nuevo registro de personas ----------")

	var p models.Persona
	for _, campo := range models.CamposEditables {
		if campo == models.CampoFechaNacimiento {
			fecha, err := m.pedirFecha()
			if err != nil {
				return err
			}
			p.FechaNacimiento = fecha
			continue
		}
		valor, err := m.term.Preguntar(models.Etiqueta(campo) + ": ")
		if err != nil {
			return err
		}
		_ = p.Asignar(campo, valor)
	}

	id, err := m.servicio.Crear(ctx, p)
	switch {
	case errors.Is(err, models.ErrSinConfirmacion):
		m.term.Mostrar("\n⚠️ El registro se envió pero el almacén no devolvió el ID. Verifique los datos guardados.")
	case err != nil:
		m.reportar("Error al insertar el registro", err)
	default:
		m.term.Mostrar("\n✅ Se registró la persona con el ID %d con éxito.", id)
	}
	return nil
}

func (m *MenuRegistro) pedirFecha() (string, error) {
	for {
		fecha, err := m.term.Preguntar(models.Etiqueta(models.CampoFechaNacimiento) + ": ")
		if err != nil {
			return "", err
		}
		edad, err := models.EdadActual(fecha)
		if err == nil {
			m.term.Mostrar("Edad calculada: %d años", edad)
			return fecha, nil
		}
		m.term.Mostrar(" ❌ Formato de fecha incorrecto. Use YYYY-MM-DD")
	}
}

func (m *MenuRegistro) listar(ctx context.Context) error {
	m.term.Mostrar("\n---------- Lectura de todos los registros de personas ----------")

	personas, err := m.servicio.Listar(ctx)
	if err != nil {
		m.reportar("Error al mostrar los registros", err)
		return nil
	}
	if len(personas) == 0 {
		m.term.Mostrar("ℹ️ No hay registros guardados.")
		return nil
	}

	m.term.Mostrar("Se encontraron %d registros:", len(personas))
	m.term.Mostrar("%s", TablaPersonas(personas))
	m.term.Mostrar("✅ Se han mostrado %d registros con éxito.", len(personas))
	return nil
}

// TablaPersonas dibuja el resumen de cada persona como tabla de texto
func TablaPersonas(personas []models.Persona) string {
	filas := make([][]string, len(personas))
	for i, p := range personas {
		filas[i] = []string{
			p.Valor(models.CampoID), p.Cedula, p.Nombre, p.Apellido, p.Valor(models.CampoEdad),
			p.Ocupacion, p.Empresa, p.TelefonoCelular,
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Cédula", "Nombre", "Apellido", "Edad", "Ocupación", "Empresa", "Teléfono").
		Rows(filas...).
		Render()
}

func (m *MenuRegistro) actualizar(ctx context.Context) error {
	m.term.Mostrar("\n---------- Actualización de registro de personas por ID ----------")

	texto, err := m.term.Preguntar("Ingrese el ID del registro a actualizar: ")
	if err != nil {
		return err
	}
	id, err := leerID(texto)
	if err != nil {
		m.reportar("ID inválido", err)
		return nil
	}

	actual, err := m.servicio.Obtener(ctx, id)
	if err != nil {
		m.reportarID(id, err)
		return nil
	}

	m.term.Mostrar("\nRegistro actual para el ID %d:", id)
	m.term.Mostrar("Nombre: %s, Apellido: %s, Cédula: %s, Edad: %d", actual.Nombre, actual.Apellido, actual.Cedula, actual.Edad)
	m.term.Separador("-", 30)
	m.term.Mostrar("Ingrese el nuevo valor para cada campo (deje vacío para mantener el valor actual):")

	cambios := models.NuevosCambios()
	for _, campo := range models.CamposEditables {
		valor, err := m.term.Preguntar(fmt.Sprintf("%s (Actual: %s): ", models.Etiqueta(campo), actual.Valor(campo)))
		if err != nil {
			return err
		}
		cambios.Poner(campo, valor)
	}

	res, err := m.servicio.Actualizar(ctx, id, cambios)
	if err != nil {
		m.reportarID(id, err)
		return nil
	}
	if res.FechaDescartada {
		fecha, _ := cambios.Valor(models.CampoFechaNacimiento)
		m.term.Mostrar("❌ La nueva fecha de nacimiento '%s' es inválida. Se conserva la fecha anterior.", fecha)
	}
	if res.SinCambios {
		m.term.Mostrar("ℹ️ No se realizaron cambios. Operación cancelada.")
		return nil
	}
	if _, ok := cambios.Valor(models.CampoFechaNacimiento); ok && !res.FechaDescartada {
		m.term.Mostrar("Edad recalculada: %d años", res.Persona.Edad)
	}
	m.term.Mostrar("\n✅ Registro con el ID %d actualizado con éxito.", id)
	return nil
}

func (m *MenuRegistro) eliminar(ctx context.Context) error {
	m.term.Mostrar("\n---------- Eliminación de registro de personas por ID ----------")

	texto, err := m.term.Preguntar("Ingrese el ID del registro a eliminar: ")
	if err != nil {
		return err
	}
	id, err := leerID(texto)
	if err != nil {
		m.reportar("ID inválido", err)
		return nil
	}

	if err := m.servicio.Eliminar(ctx, id); err != nil {
		m.reportarID(id, err)
		return nil
	}
	m.term.Mostrar("\n✅ Registro con el ID %d eliminado con éxito.", id)
	return nil
}

func (m *MenuRegistro) reportarID(id int, err error) {
	if errors.Is(err, models.ErrNoEncontrado) {
		m.term.Mostrar("❌ No se encontró ningún registro con el ID %d.", id)
		return
	}
	m.reportar("Error en el registro", err)
}

func (m *MenuRegistro) reportar(contexto string, err error) {
	if errors.Is(err, models.ErrAlmacen) {
		m.term.Mostrar("\n❌ %s: el almacén no respondió correctamente (%v)", contexto, err)
		return
	}
	m.term.Mostrar("\n❌ %s: %v", contexto, err)
}
