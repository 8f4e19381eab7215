package conversor

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lizet96/registro-personas/models"
	_ "modernc.org/sqlite"
)

// EscribirSQLite reemplaza la tabla en la base SQLite (se crea si no
// existe) con el contenido completo de t, dentro de una sola transacción.
func EscribirSQLite(t Tabla, rutaDB, tabla string) error {
	if strings.TrimSpace(tabla) == "" {
		return fmt.Errorf("%w: el nombre de la tabla está vacío", models.ErrFormato)
	}
	if len(t.Columnas) == 0 {
		return fmt.Errorf("%w: el origen no tiene columnas", models.ErrFormato)
	}

	db, err := sql.Open("sqlite", rutaDB)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	defer db.Close()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	defer tx.Rollback()

	nombre := citar(tabla)
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+nombre); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}

	definiciones := make([]string, len(t.Columnas))
	marcas := make([]string, len(t.Columnas))
	for j, col := range t.Columnas {
		definiciones[j] = citar(col) + " " + afinidad(t.tipoDeColumna(j))
		marcas[j] = "?"
	}
	crear := fmt.Sprintf("CREATE TABLE %s (%s)", nombre, strings.Join(definiciones, ", "))
	if _, err := tx.ExecContext(ctx, crear); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", nombre, strings.Join(marcas, ", ")))
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	defer stmt.Close()

	for _, fila := range t.Filas {
		args := make([]any, len(fila))
		for j, v := range fila {
			if args[j], err = valorSQL(v); err != nil {
				return fmt.Errorf("%w: %w", models.ErrFormato, err)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAlmacen, err)
	}
	return nil
}

func afinidad(tipo tipoColumna) string {
	switch tipo {
	case tipoEntero, tipoBool:
		return "INTEGER"
	case tipoReal:
		return "REAL"
	}
	return "TEXT"
}

// valorSQL adapta una celda a un tipo que acepta el driver. Los valores
// anidados se guardan como texto JSON.
func valorSQL(v any) (any, error) {
	switch x := v.(type) {
	case nil, int64, float64, string:
		return x, nil
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func citar(nombre string) string {
	return `"` + strings.ReplaceAll(nombre, `"`, `""`) + `"`
}
