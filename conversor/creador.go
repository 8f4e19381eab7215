package conversor

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/lizet96/registro-personas/models"
)

// CreadorCSV escribe un CSV fila por fila a medida que se capturan los datos
type CreadorCSV struct {
	ruta       string
	encabezado []string
	archivo    *os.File
	escritor   *csv.Writer
	filas      int
}

// NombreCSV agrega la extensión .csv cuando falta
func NombreCSV(nombre string) string {
	nombre = strings.TrimSpace(nombre)
	if !strings.HasSuffix(strings.ToLower(nombre), ".csv") {
		nombre += ".csv"
	}
	return nombre
}

// Encabezados separa una lista de columnas escrita con comas
func Encabezados(entrada string) []string {
	var columnas []string
	for _, c := range strings.Split(entrada, ",") {
		columnas = append(columnas, strings.TrimSpace(c))
	}
	return columnas
}

// NuevoCreadorCSV crea (o trunca) el archivo y escribe el encabezado
func NuevoCreadorCSV(ruta string, encabezado []string) (*CreadorCSV, error) {
	if len(encabezado) == 0 || encabezado[0] == "" {
		return nil, fmt.Errorf("%w: debe ingresar al menos un encabezado", models.ErrFormato)
	}
	f, err := os.Create(ruta)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	c := &CreadorCSV{ruta: ruta, encabezado: encabezado, archivo: f, escritor: csv.NewWriter(f)}
	if err := c.escribir(encabezado); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

// Agregar escribe una fila completa. Las filas incompletas se rechazan.
func (c *CreadorCSV) Agregar(fila []string) error {
	if len(fila) != len(c.encabezado) {
		return fmt.Errorf("%w: fila incompleta (%d de %d campos)", models.ErrFormato, len(fila), len(c.encabezado))
	}
	if err := c.escribir(fila); err != nil {
		return err
	}
	c.filas++
	return nil
}

// Filas devuelve cuántas filas de datos se han escrito
func (c *CreadorCSV) Filas() int {
	return c.filas
}

// Cerrar vacía el búfer y cierra el archivo
func (c *CreadorCSV) Cerrar() error {
	c.escritor.Flush()
	errEscritura := c.escritor.Error()
	if err := c.archivo.Close(); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	if errEscritura != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, errEscritura)
	}
	return nil
}

func (c *CreadorCSV) escribir(fila []string) error {
	if err := c.escritor.Write(fila); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	// Cada fila queda en disco aunque el proceso se interrumpa después
	c.escritor.Flush()
	if err := c.escritor.Error(); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	return nil
}

// CrearCSV escribe de una vez un CSV con las filas dadas y devuelve cuántas
// se guardaron
func CrearCSV(destino string, encabezados []string, filas [][]string) (int, error) {
	creador, err := NuevoCreadorCSV(NombreCSV(destino), encabezados)
	if err != nil {
		return 0, err
	}
	for _, fila := range filas {
		if err := creador.Agregar(fila); err != nil {
			_ = creador.Cerrar()
			return creador.Filas(), err
		}
	}
	return creador.Filas(), creador.Cerrar()
}
