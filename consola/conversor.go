package consola

import (
	"errors"
	"io"
	"strings"

	"github.com/lizet96/registro-personas/conversor"
	"github.com/lizet96/registro-personas/models"
)

// MenuConversor es el menú del conversor de datos multi-formato
type MenuConversor struct {
	term      *Terminal
	conversor *conversor.Conversor
}

// NuevoMenuConversor crea el menú
func NuevoMenuConversor(term *Terminal, c *conversor.Conversor) *MenuConversor {
	return &MenuConversor{term: term, conversor: c}
}

// Ejecutar muestra el menú hasta que el usuario elige salir o se acaba la
// entrada
func (m *MenuConversor) Ejecutar() error {
	for {
		m.term.Mostrar("")
		m.term.Separador("=", 50)
		m.term.Mostrar("           📊 CONVERSOR DE DATOS MULTI-FORMATO")
		m.term.Separador("=", 50)
		m.term.Mostrar("0. ➕  CREAR CSV interactivamente")
		m.term.Mostrar("1. ➡️  CSV a JSON")
		m.term.Mostrar("2. ➡️  CSV a SQL (SQLite)")
		m.term.Mostrar("3. ⬅️  JSON a SQL (SQLite)")
		m.term.Mostrar("4. ⬅️  JSON a CSV")
		m.term.Mostrar("5. 🚪 Salir")
		m.term.Separador("-", 50)

		opcion, err := m.term.Preguntar("Seleccione una opción (0-5): ")
		if errors.Is(err, io.EOF) {
			m.despedida()
			return nil
		}
		if err != nil {
			return err
		}

		switch opcion {
		case "0":
			err = m.crearCSV()
		case "1":
			err = m.convertir("CSV a JSON", []string{
				"Nombre del archivo CSV de entrada: ",
				"Nombre para el archivo JSON de salida: ",
			}, func(r []string) error { return m.conversor.CSVaJSON(r[0], r[1]) }, "'%[1]s' -> '%[2]s'")
		case "2":
			err = m.convertir("CSV a SQL", []string{
				"Nombre del archivo CSV de entrada: ",
				"Nombre para la base de datos SQLite (.db): ",
				"Nombre para la tabla SQL: ",
			}, func(r []string) error { return m.conversor.CSVaSQL(r[0], r[1], r[2]) }, "'%[1]s' -> Tabla '%[3]s' en '%[2]s'")
		case "3":
			err = m.convertir("JSON a SQL", []string{
				"Nombre del archivo JSON de entrada: ",
				"Nombre para la base de datos SQLite (.db): ",
				"Nombre para la tabla SQL: ",
			}, func(r []string) error { return m.conversor.JSONaSQL(r[0], r[1], r[2]) }, "'%[1]s' -> Tabla '%[3]s' en '%[2]s'")
		case "4":
			err = m.convertir("JSON a CSV", []string{
				"Nombre del archivo JSON de entrada: ",
				"Nombre para el archivo CSV de salida: ",
			}, func(r []string) error { return m.conversor.JSONaCSV(r[0], r[1]) }, "'%[1]s' -> '%[2]s'")
		case "5":
			m.despedida()
			return nil
		default:
			m.term.Mostrar("\n⚠️ Opción no válida. Por favor, ingrese un número del 0 al 5.")
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

func (m *MenuConversor) despedida() {
	m.term.Mostrar("\n👋 ¡Gracias por usar el conversor! Saliendo del programa.")
}

// convertir pide las rutas, ejecuta la conversión e informa el resultado.
// resumen recibe las respuestas como argumentos posicionales.
func (m *MenuConversor) convertir(nombre string, preguntas []string, op func([]string) error, resumen string) error {
	respuestas := make([]string, len(preguntas))
	for i, p := range preguntas {
		r, err := m.term.Preguntar(p)
		if err != nil {
			return err
		}
		respuestas[i] = r
	}

	err := op(respuestas)
	switch {
	case errors.Is(err, models.ErrArchivoNoEncontrado):
		m.term.Mostrar("\n❌ Error: El archivo de entrada '%s' no fue encontrado.", respuestas[0])
	case err != nil:
		m.term.Mostrar("\n❌ Ocurrió un error en %s: %v", nombre, err)
	default:
		args := make([]any, len(respuestas))
		for i, r := range respuestas {
			args[i] = r
		}
		m.term.Mostrar("\n✅ Conversión exitosa: "+resumen, args...)
	}
	return nil
}

// crearCSV captura encabezados y filas desde la terminal. Escribir FIN en
// cualquier campo termina la captura; la fila en curso no se guarda.
func (m *MenuConversor) crearCSV() error {
	nombre, err := m.term.Preguntar("Ingrese el nombre del archivo CSV a crear (ej. datos.csv): ")
	if err != nil {
		return err
	}
	nombre = conversor.NombreCSV(nombre)

	m.term.Mostrar("\n--- Definición de Encabezados ---")
	entrada, err := m.term.Preguntar("Ingrese los nombres de las columnas separados por comas (ej. ID,Nombre,Edad): ")
	if err != nil {
		return err
	}
	encabezados := conversor.Encabezados(entrada)

	creador, err := conversor.NuevoCreadorCSV(nombre, encabezados)
	if errors.Is(err, models.ErrFormato) {
		m.term.Mostrar("\n❌ Error: Debe ingresar al menos un encabezado.")
		return nil
	}
	if err != nil {
		m.term.Mostrar("\n❌ Error de escritura en el archivo '%s': %v", nombre, err)
		return nil
	}

	m.term.Mostrar("\n✅ Archivo '%s' creado con encabezados: %s", nombre, strings.Join(encabezados, ", "))
	m.term.Mostrar("\n--- Ingreso de Datos (Filas) ---")
	m.term.Mostrar("Escriba 'FIN' en cualquier momento para terminar.")

	errCaptura := m.capturarFilas(creador, encabezados)

	if err := creador.Cerrar(); err != nil {
		m.term.Mostrar("\n❌ Error de escritura en el archivo '%s': %v", nombre, err)
	}
	m.term.Mostrar("\n🎉 Proceso finalizado. El archivo '%s' ha sido cerrado (%d filas).", nombre, creador.Filas())
	return errCaptura
}

func (m *MenuConversor) capturarFilas(creador *conversor.CreadorCSV, encabezados []string) error {
	for {
		fila := make([]string, 0, len(encabezados))
		for _, encabezado := range encabezados {
			valor, err := m.term.Preguntar("Ingrese valor para '" + encabezado + "': ")
			if err != nil {
				return err
			}
			if strings.EqualFold(valor, "FIN") {
				return nil
			}
			fila = append(fila, valor)
		}
		if err := creador.Agregar(fila); err != nil {
			m.term.Mostrar("⚠️ Fila no guardada: %v", err)
			continue
		}
		m.term.Mostrar("👍 Fila agregada.")
	}
}
