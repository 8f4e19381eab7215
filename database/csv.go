package database

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/lizet96/registro-personas/models"
)

// ArchivoCSV guarda las personas en un archivo delimitado por comas con el
// encabezado models.CamposCSV. Cada operación abre, usa y cierra el archivo.
// mu serializa las operaciones dentro del proceso; no hay bloqueo entre
// procesos.
type ArchivoCSV struct {
	mu   sync.Mutex
	ruta string
}

// NuevoArchivoCSV crea el almacén sobre la ruta indicada
func NuevoArchivoCSV(ruta string) *ArchivoCSV {
	return &ArchivoCSV{ruta: ruta}
}

// Ruta devuelve la ruta del archivo
func (a *ArchivoCSV) Ruta() string {
	return a.ruta
}

// Inicializar crea el archivo con el encabezado si todavía no existe
func (a *ArchivoCSV) Inicializar() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := os.Stat(a.ruta)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	return a.escribir(nil)
}

var _ Almacen = (*ArchivoCSV)(nil)

// SiguienteID devuelve 1 si no hay ids numéricos y si no 1 + el mayor.
// Los ids vacíos o no numéricos se ignoran.
func SiguienteID(ids []string) int {
	maximo := 0
	for _, texto := range ids {
		id, err := strconv.Atoi(strings.TrimSpace(texto))
		if err != nil {
			continue
		}
		if id > maximo {
			maximo = id
		}
	}
	return maximo + 1
}

func (a *ArchivoCSV) Listar(ctx context.Context) ([]models.Persona, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	filas, err := a.leer()
	if err != nil {
		return nil, err
	}
	personas := make([]models.Persona, 0, len(filas))
	for _, fila := range filas {
		personas = append(personas, models.PersonaDesdeFila(models.CamposCSV, fila))
	}
	return personas, nil
}

func (a *ArchivoCSV) Obtener(ctx context.Context, id int) (models.Persona, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	filas, err := a.leer()
	if err != nil {
		return models.Persona{}, err
	}
	i := buscar(filas, id)
	if i < 0 {
		return models.Persona{}, fmt.Errorf("%w: id %d", models.ErrNoEncontrado, id)
	}
	return models.PersonaDesdeFila(models.CamposCSV, filas[i]), nil
}

func (a *ArchivoCSV) Insertar(ctx context.Context, p models.Persona) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	filas, err := a.leer()
	if err != nil {
		return 0, err
	}
	ids := make([]string, len(filas))
	for i, fila := range filas {
		ids[i] = fila[0]
	}
	p.ID = SiguienteID(ids)
	filas = append(filas, p.Fila())
	if err := a.escribir(filas); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (a *ArchivoCSV) Actualizar(ctx context.Context, id int, cambios models.CambiosPersona) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	filas, err := a.leer()
	if err != nil {
		return false, err
	}
	i := buscar(filas, id)
	if i < 0 {
		return false, nil
	}
	actual := models.PersonaDesdeFila(models.CamposCSV, filas[i])
	nueva := actual.Aplicar(cambios).Fila()
	// Se conserva el texto original de las columnas que no cambiaron
	for j, campo := range models.CamposCSV {
		cambiado := cambios.Edad != nil
		if campo != models.CampoEdad {
			_, cambiado = cambios.Valor(campo)
		}
		if !cambiado {
			nueva[j] = filas[i][j]
		}
	}
	filas[i] = nueva
	return true, a.escribir(filas)
}

func (a *ArchivoCSV) Eliminar(ctx context.Context, id int) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	filas, err := a.leer()
	if err != nil {
		return false, err
	}
	i := buscar(filas, id)
	if i < 0 {
		return false, nil
	}
	filas = append(filas[:i], filas[i+1:]...)
	return true, a.escribir(filas)
}

// buscar devuelve la posición de la fila con ese id o -1
func buscar(filas [][]string, id int) int {
	for i, fila := range filas {
		n, err := strconv.Atoi(strings.TrimSpace(fila[0]))
		if err == nil && n == id {
			return i
		}
	}
	return -1
}

// leer devuelve las filas de datos reordenadas según models.CamposCSV. Un
// archivo inexistente equivale a una colección vacía.
func (a *ArchivoCSV) leer() ([][]string, error) {
	f, err := os.Open(a.ruta)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	defer f.Close()

	lector := csv.NewReader(f)
	lector.FieldsPerRecord = -1

	encabezado, err := lector.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: leyendo %s: %w", models.ErrAlmacen, a.ruta, err)
	}
	posiciones := make(map[string]int, len(encabezado))
	for i, campo := range encabezado {
		posiciones[strings.TrimSpace(strings.TrimPrefix(campo, "\ufeff"))] = i
	}

	var filas [][]string
	for {
		registro, err := lector.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: leyendo %s: %w", models.ErrAlmacen, a.ruta, err)
		}
		fila := make([]string, len(models.CamposCSV))
		for j, campo := range models.CamposCSV {
			if k, ok := posiciones[campo]; ok && k < len(registro) {
				fila[j] = registro[k]
			}
		}
		filas = append(filas, fila)
	}
	return filas, nil
}

// escribir reemplaza el contenido completo del archivo. Se escribe en un
// temporal del mismo directorio que luego se renombra sobre el original.
func (a *ArchivoCSV) escribir(filas [][]string) error {
	dir := filepath.Dir(a.ruta)
	tmp, err := os.CreateTemp(dir, ".registro-*.csv")
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}

	escritor := csv.NewWriter(tmp)
	if err := escritor.Write(models.CamposCSV); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	if err := escritor.WriteAll(filas); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	if err := os.Rename(tmp.Name(), a.ruta); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	return nil
}
