package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lizet96/registro-personas/models"
)

// Consultor es el subconjunto de *pgxpool.Pool que usa TablaRemota
type Consultor interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var identificador = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TablaRemota guarda las personas en una tabla de Postgres alojada. El id
// lo genera la base de datos.
type TablaRemota struct {
	db    Consultor
	tabla string
}

var _ Almacen = (*TablaRemota)(nil)

// NuevaTablaRemota crea el almacén sobre la tabla indicada
func NuevaTablaRemota(db Consultor, tabla string) (*TablaRemota, error) {
	if !identificador.MatchString(tabla) {
		return nil, fmt.Errorf("nombre de tabla inválido: %q", tabla)
	}
	return &TablaRemota{db: db, tabla: pgx.Identifier{tabla}.Sanitize()}, nil
}

// CrearTabla crea la tabla de personas si no existe
func (t *TablaRemota) CrearTabla(ctx context.Context) error {
	var columnas []string
	for _, campo := range models.CamposCSV {
		switch campo {
		case models.CampoID:
			columnas = append(columnas, "id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY")
		case models.CampoEdad:
			columnas = append(columnas, "edad INTEGER NOT NULL DEFAULT 0")
		default:
			columnas = append(columnas, campo+" TEXT NOT NULL DEFAULT ''")
		}
	}
	sql := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.tabla, strings.Join(columnas, ",\n\t"))
	if _, err := t.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("%w: al crear la tabla: %w", models.ErrAlmacen, err)
	}
	return nil
}

func (t *TablaRemota) Listar(ctx context.Context) ([]models.Persona, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(models.CamposCSV, ", "), t.tabla)
	rows, err := t.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("%w: al obtener los registros: %w", models.ErrAlmacen, err)
	}
	personas, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Persona])
	if err != nil {
		return nil, fmt.Errorf("%w: al leer los registros: %w", models.ErrAlmacen, err)
	}
	return personas, nil
}

func (t *TablaRemota) Obtener(ctx context.Context, id int) (models.Persona, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 LIMIT 1", strings.Join(models.CamposCSV, ", "), t.tabla)
	rows, err := t.db.Query(ctx, sql, id)
	if err != nil {
		return models.Persona{}, fmt.Errorf("%w: al obtener el registro: %w", models.ErrAlmacen, err)
	}
	p, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Persona])
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Persona{}, fmt.Errorf("%w: id %d", models.ErrNoEncontrado, id)
	}
	if err != nil {
		return models.Persona{}, fmt.Errorf("%w: al leer el registro: %w", models.ErrAlmacen, err)
	}
	return p, nil
}

func (t *TablaRemota) Insertar(ctx context.Context, p models.Persona) (int, error) {
	sql, args := construirInsert(t.tabla, p)
	var id int
	err := t.db.QueryRow(ctx, sql, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, models.ErrSinConfirmacion
	}
	if err != nil {
		return 0, fmt.Errorf("%w: al insertar el registro: %w", models.ErrAlmacen, err)
	}
	return id, nil
}

func (t *TablaRemota) Actualizar(ctx context.Context, id int, cambios models.CambiosPersona) (bool, error) {
	if cambios.Vacio() {
		return false, nil
	}
	sql, args := construirUpdate(t.tabla, id, cambios)
	tag, err := t.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("%w: al actualizar el registro: %w", models.ErrAlmacen, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (t *TablaRemota) Eliminar(ctx context.Context, id int) (bool, error) {
	tag, err := t.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.tabla), id)
	if err != nil {
		return false, fmt.Errorf("%w: al eliminar el registro: %w", models.ErrAlmacen, err)
	}
	return tag.RowsAffected() > 0, nil
}

func construirInsert(tabla string, p models.Persona) (string, []any) {
	var (
		columnas []string
		marcas   []string
		args     []any
	)
	for _, campo := range models.CamposCSV {
		if campo == models.CampoID {
			continue
		}
		columnas = append(columnas, campo)
		args = append(args, valorColumna(p, campo))
		marcas = append(marcas, fmt.Sprintf("$%d", len(args)))
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		tabla, strings.Join(columnas, ", "), strings.Join(marcas, ", "))
	return sql, args
}

// construirUpdate arma el UPDATE solo con las columnas presentes en cambios
func construirUpdate(tabla string, id int, cambios models.CambiosPersona) (string, []any) {
	var (
		asignaciones []string
		args         []any
	)
	for _, campo := range cambios.Columnas() {
		if campo == models.CampoEdad {
			args = append(args, *cambios.Edad)
		} else {
			v, _ := cambios.Valor(campo)
			args = append(args, v)
		}
		asignaciones = append(asignaciones, fmt.Sprintf("%s = $%d", campo, len(args)))
	}
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", tabla, strings.Join(asignaciones, ", "), len(args))
	return sql, args
}

func valorColumna(p models.Persona, campo string) any {
	if campo == models.CampoEdad {
		return p.Edad
	}
	return p.Valor(campo)
}
