// Package conversor convierte archivos tabulares entre CSV, JSON (lista de
// objetos) y tablas SQLite. Cada operación carga el origen completo en
// memoria y escribe el destino de una sola vez.
package conversor

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/lizet96/registro-personas/models"
	"go.uber.org/zap"
)

// Conversor ejecuta las conversiones y registra su resultado
type Conversor struct {
	log *zap.Logger
}

// Nuevo crea un conversor
func Nuevo(log *zap.Logger) *Conversor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Conversor{log: log}
}

// CSVaJSON convierte un CSV en una lista de objetos JSON con sangría de
// cuatro espacios
func (c *Conversor) CSVaJSON(origen, destino string) error {
	tabla, err := LeerCSV(origen)
	if err != nil {
		return c.fallo("csv a json", origen, err)
	}
	if err := EscribirJSON(tabla, destino); err != nil {
		return c.fallo("csv a json", origen, err)
	}
	c.log.Info("conversión exitosa", zap.String("tipo", "csv a json"),
		zap.String("origen", origen), zap.String("destino", destino), zap.Int("filas", len(tabla.Filas)))
	return nil
}

// CSVaSQL carga un CSV en una tabla SQLite, reemplazándola si existe
func (c *Conversor) CSVaSQL(origen, db, tabla string) error {
	t, err := LeerCSV(origen)
	if err != nil {
		return c.fallo("csv a sql", origen, err)
	}
	if err := EscribirSQLite(t, db, tabla); err != nil {
		return c.fallo("csv a sql", origen, err)
	}
	c.log.Info("conversión exitosa", zap.String("tipo", "csv a sql"),
		zap.String("origen", origen), zap.String("db", db), zap.String("tabla", tabla), zap.Int("filas", len(t.Filas)))
	return nil
}

// JSONaSQL carga una lista de objetos JSON en una tabla SQLite,
// reemplazándola si existe
func (c *Conversor) JSONaSQL(origen, db, tabla string) error {
	t, err := LeerJSON(origen)
	if err != nil {
		return c.fallo("json a sql", origen, err)
	}
	if err := EscribirSQLite(t, db, tabla); err != nil {
		return c.fallo("json a sql", origen, err)
	}
	c.log.Info("conversión exitosa", zap.String("tipo", "json a sql"),
		zap.String("origen", origen), zap.String("db", db), zap.String("tabla", tabla), zap.Int("filas", len(t.Filas)))
	return nil
}

// JSONaCSV convierte una lista de objetos JSON en un CSV
func (c *Conversor) JSONaCSV(origen, destino string) error {
	t, err := LeerJSON(origen)
	if err != nil {
		return c.fallo("json a csv", origen, err)
	}
	if err := EscribirCSV(t, destino); err != nil {
		return c.fallo("json a csv", origen, err)
	}
	c.log.Info("conversión exitosa", zap.String("tipo", "json a csv"),
		zap.String("origen", origen), zap.String("destino", destino), zap.Int("filas", len(t.Filas)))
	return nil
}

func (c *Conversor) fallo(tipo, origen string, err error) error {
	c.log.Error("conversión fallida", zap.String("tipo", tipo), zap.String("origen", origen), zap.Error(err))
	return err
}

// abrirOrigen comprueba que la ruta exista antes de leerla
func abrirOrigen(ruta string) ([]byte, error) {
	datos, err := os.ReadFile(ruta)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", models.ErrArchivoNoEncontrado, ruta)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	return datos, nil
}

// LeerCSV carga un CSV con encabezado e infiere el tipo de cada columna
func LeerCSV(ruta string) (Tabla, error) {
	datos, err := abrirOrigen(ruta)
	if err != nil {
		return Tabla{}, err
	}
	datos = bytes.TrimPrefix(datos, []byte("\ufeff"))

	lector := csv.NewReader(bytes.NewReader(datos))
	lector.FieldsPerRecord = -1

	encabezado, err := lector.Read()
	if err == io.EOF {
		return Tabla{}, fmt.Errorf("%w: %s no tiene columnas", models.ErrFormato, ruta)
	}
	if err != nil {
		return Tabla{}, fmt.Errorf("%w: %w", models.ErrFormato, err)
	}
	columnas := nombresUnicos(encabezado)

	var crudas [][]string
	for linea := 2; ; linea++ {
		fila, err := lector.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Tabla{}, fmt.Errorf("%w: %w", models.ErrFormato, err)
		}
		if len(fila) > len(columnas) {
			return Tabla{}, fmt.Errorf("%w: se esperaban %d campos en la línea %d y hay %d",
				models.ErrFormato, len(columnas), linea, len(fila))
		}
		for len(fila) < len(columnas) {
			fila = append(fila, "")
		}
		crudas = append(crudas, fila)
	}
	return Tabla{Columnas: columnas, Filas: inferirCeldas(columnas, crudas)}, nil
}

// LeerJSON carga una lista de objetos. Las columnas quedan en el orden en
// que aparecen por primera vez; una clave ausente en un objeto es nil.
func LeerJSON(ruta string) (Tabla, error) {
	datos, err := abrirOrigen(ruta)
	if err != nil {
		return Tabla{}, err
	}
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(datos, []byte("\ufeff"))))
	dec.UseNumber()

	if err := esperar(dec, json.Delim('[')); err != nil {
		return Tabla{}, err
	}

	var (
		columnas []string
		posicion = map[string]int{}
		objetos  []map[string]any
	)
	for dec.More() {
		if err := esperar(dec, json.Delim('{')); err != nil {
			return Tabla{}, err
		}
		obj := map[string]any{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return Tabla{}, fmt.Errorf("%w: %w", models.ErrFormato, err)
			}
			clave, _ := tok.(string)
			var valor any
			if err := dec.Decode(&valor); err != nil {
				return Tabla{}, fmt.Errorf("%w: %w", models.ErrFormato, err)
			}
			if valor, err = normalizarJSON(valor); err != nil {
				return Tabla{}, fmt.Errorf("%w: %w", models.ErrFormato, err)
			}
			if _, ok := posicion[clave]; !ok {
				posicion[clave] = len(columnas)
				columnas = append(columnas, clave)
			}
			obj[clave] = valor
		}
		if err := esperar(dec, json.Delim('}')); err != nil {
			return Tabla{}, err
		}
		objetos = append(objetos, obj)
	}
	if err := esperar(dec, json.Delim(']')); err != nil {
		return Tabla{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Tabla{}, fmt.Errorf("%w: contenido adicional después de la lista", models.ErrFormato)
	}

	filas := make([][]any, len(objetos))
	for i, obj := range objetos {
		fila := make([]any, len(columnas))
		for clave, v := range obj {
			fila[posicion[clave]] = v
		}
		filas[i] = fila
	}
	return Tabla{Columnas: columnas, Filas: filas}, nil
}

func esperar(dec *json.Decoder, delim json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrFormato, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != delim {
		return fmt.Errorf("%w: se esperaba %q y se encontró %v", models.ErrFormato, delim.String(), tok)
	}
	return nil
}

// EscribirJSON escribe la tabla como lista de objetos
func EscribirJSON(t Tabla, ruta string) error {
	registros := make([]registro, len(t.Filas))
	for i, fila := range t.Filas {
		registros[i] = registro{columnas: t.Columnas, valores: fila}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(registros); err != nil {
		return fmt.Errorf("%w: %w", models.ErrFormato, err)
	}
	if err := os.WriteFile(ruta, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	return nil
}

// EscribirCSV escribe la tabla con su encabezado
func EscribirCSV(t Tabla, ruta string) error {
	var buf bytes.Buffer
	escritor := csv.NewWriter(&buf)
	if err := escritor.Write(t.Columnas); err != nil {
		return fmt.Errorf("%w: %w", models.ErrFormato, err)
	}
	for _, fila := range t.Filas {
		textos := make([]string, len(fila))
		for j, v := range fila {
			s, err := textoCelda(v)
			if err != nil {
				return fmt.Errorf("%w: %w", models.ErrFormato, err)
			}
			textos[j] = s
		}
		if err := escritor.Write(textos); err != nil {
			return fmt.Errorf("%w: %w", models.ErrFormato, err)
		}
	}
	escritor.Flush()
	if err := escritor.Error(); err != nil {
		return fmt.Errorf("%w: %w", models.ErrFormato, err)
	}
	if err := os.WriteFile(ruta, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	return nil
}
