package conversor

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/lizet96/registro-personas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvEmpleados = "nombre,edad,salario\nAna,30,1500.5\nLuis,,2000\n"

const jsonEmpleados = `[
    {
        "nombre": "Ana",
        "edad": 30,
        "salario": 1500.5
    },
    {
        "nombre": "Luis",
        "edad": null,
        "salario": 2000
    }
]
`

func escribirArchivo(t *testing.T, nombre, contenido string) string {
	t.Helper()
	ruta := filepath.Join(t.TempDir(), nombre)
	require.NoError(t, os.WriteFile(ruta, []byte(contenido), 0o644))
	return ruta
}

func leer(t *testing.T, ruta string) string {
	t.Helper()
	datos, err := os.ReadFile(ruta)
	require.NoError(t, err)
	return string(datos)
}

func TestLeerCSV_InfiereTipos(t *testing.T) {
	ruta := escribirArchivo(t, "datos.csv", "id,codigo,precio,nota\n1,007,2.5,hola\n2,x12,3,\n")

	tabla, err := LeerCSV(ruta)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "codigo", "precio", "nota"}, tabla.Columnas)
	assert.Equal(t, [][]any{
		{int64(1), "007", 2.5, "hola"},
		{int64(2), "x12", 3.0, nil},
	}, tabla.Filas)
}

func TestLeerCSV_Errores(t *testing.T) {
	t.Run("archivo inexistente", func(t *testing.T) {
		_, err := LeerCSV(filepath.Join(t.TempDir(), "no_existe.csv"))
		assert.ErrorIs(t, err, models.ErrArchivoNoEncontrado)
	})

	t.Run("archivo vacío", func(t *testing.T) {
		_, err := LeerCSV(escribirArchivo(t, "vacio.csv", ""))
		assert.ErrorIs(t, err, models.ErrFormato)
	})

	t.Run("fila con campos de más", func(t *testing.T) {
		_, err := LeerCSV(escribirArchivo(t, "largo.csv", "a,b\n1,2,3\n"))
		assert.ErrorIs(t, err, models.ErrFormato)
	})

	t.Run("comilla sin cerrar", func(t *testing.T) {
		_, err := LeerCSV(escribirArchivo(t, "comilla.csv", "a,b\n\"1,2\n"))
		assert.ErrorIs(t, err, models.ErrFormato)
	})
}

func TestLeerCSV_FilaCortaYBOM(t *testing.T) {
	tabla, err := LeerCSV(escribirArchivo(t, "corto.csv", "\ufeffa,b,c\n1\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, tabla.Columnas)
	assert.Equal(t, [][]any{{int64(1), nil, nil}}, tabla.Filas)
}

func TestNombresUnicos(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "a.1", "Unnamed: 2", "a.2", "b"},
		nombresUnicos([]string{"a", "a", "", "a", "b"}))
}

func TestCSVaJSONaCSV(t *testing.T) {
	c := Nuevo(nil)
	origen := escribirArchivo(t, "empleados.csv", csvEmpleados)
	dir := filepath.Dir(origen)
	destinoJSON := filepath.Join(dir, "empleados.json")
	destinoCSV := filepath.Join(dir, "copia.csv")

	require.NoError(t, c.CSVaJSON(origen, destinoJSON))
	assert.Equal(t, jsonEmpleados, leer(t, destinoJSON))

	require.NoError(t, c.JSONaCSV(destinoJSON, destinoCSV))
	assert.Equal(t, csvEmpleados, leer(t, destinoCSV))
}

func TestCSVaJSON_SinEscaparHTML(t *testing.T) {
	c := Nuevo(nil)
	origen := escribirArchivo(t, "html.csv", "texto\n<a&b>\n")
	destino := filepath.Join(filepath.Dir(origen), "html.json")

	require.NoError(t, c.CSVaJSON(origen, destino))
	assert.Contains(t, leer(t, destino), `"texto": "<a&b>"`)
}

func TestLeerJSON(t *testing.T) {
	t.Run("conserva el orden y completa claves", func(t *testing.T) {
		ruta := escribirArchivo(t, "datos.json", `[{"z": 1, "a": "x"}, {"a": "y", "m": true, "n": {"k": [1, 2.5]}}]`)

		tabla, err := LeerJSON(ruta)
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "a", "m", "n"}, tabla.Columnas)
		assert.Equal(t, []any{int64(1), "x", nil, nil}, tabla.Filas[0])
		assert.Equal(t, []any{nil, "y", true, map[string]any{"k": []any{int64(1), 2.5}}}, tabla.Filas[1])
	})

	t.Run("lista vacía", func(t *testing.T) {
		tabla, err := LeerJSON(escribirArchivo(t, "vacio.json", "[]"))
		require.NoError(t, err)
		assert.Empty(t, tabla.Columnas)
		assert.Empty(t, tabla.Filas)
	})

	for nombre, contenido := range map[string]string{
		"no es lista":       `{"a": 1}`,
		"lista de números":  `[1, 2]`,
		"truncado":          `[{"a": 1}`,
		"contenido de más":  `[{"a": 1}] []`,
		"texto sin formato": `hola`,
	} {
		t.Run(nombre, func(t *testing.T) {
			_, err := LeerJSON(escribirArchivo(t, "malo.json", contenido))
			assert.ErrorIs(t, err, models.ErrFormato)
		})
	}

	t.Run("archivo inexistente", func(t *testing.T) {
		_, err := LeerJSON(filepath.Join(t.TempDir(), "no_existe.json"))
		assert.ErrorIs(t, err, models.ErrArchivoNoEncontrado)
	})
}

func TestJSONaCSV_ValoresAnidados(t *testing.T) {
	c := Nuevo(nil)
	origen := escribirArchivo(t, "anidado.json", `[{"id": 1, "activo": true, "tags": ["a", "b"]}, {"id": 2}]`)
	destino := filepath.Join(filepath.Dir(origen), "anidado.csv")

	require.NoError(t, c.JSONaCSV(origen, destino))
	assert.Equal(t, "id,activo,tags\n1,true,\"[\"\"a\"\",\"\"b\"\"]\"\n2,,\n", leer(t, destino))
}

type filaEmpleado struct {
	Nombre  string
	Edad    sql.NullInt64
	Salario float64
}

func leerEmpleados(t *testing.T, rutaDB, tabla string) []filaEmpleado {
	t.Helper()
	db, err := sql.Open("sqlite", rutaDB)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT nombre, edad, salario FROM "` + tabla + `" ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()

	var filas []filaEmpleado
	for rows.Next() {
		var f filaEmpleado
		require.NoError(t, rows.Scan(&f.Nombre, &f.Edad, &f.Salario))
		filas = append(filas, f)
	}
	require.NoError(t, rows.Err())
	return filas
}

func TestCSVaSQL_ReemplazaLaTabla(t *testing.T) {
	c := Nuevo(nil)
	origen := escribirArchivo(t, "empleados.csv", csvEmpleados)
	rutaDB := filepath.Join(filepath.Dir(origen), "empresa.db")

	require.NoError(t, c.CSVaSQL(origen, rutaDB, "empleados"))
	require.NoError(t, c.CSVaSQL(origen, rutaDB, "empleados"))

	filas := leerEmpleados(t, rutaDB, "empleados")
	require.Len(t, filas, 2, "la segunda carga reemplaza a la primera")
	assert.Equal(t, filaEmpleado{Nombre: "Ana", Edad: sql.NullInt64{Int64: 30, Valid: true}, Salario: 1500.5}, filas[0])
	assert.Equal(t, filaEmpleado{Nombre: "Luis", Salario: 2000}, filas[1])
}

func TestJSONaSQL(t *testing.T) {
	c := Nuevo(nil)
	origen := escribirArchivo(t, "empleados.json", jsonEmpleados)
	rutaDB := filepath.Join(filepath.Dir(origen), "empresa.db")

	require.NoError(t, c.JSONaSQL(origen, rutaDB, "personal"))

	filas := leerEmpleados(t, rutaDB, "personal")
	require.Len(t, filas, 2)
	assert.Equal(t, "Luis", filas[1].Nombre)
	assert.False(t, filas[1].Edad.Valid)
}

func TestJSONaSQL_OrigenInvalidoNoTocaLaBase(t *testing.T) {
	c := Nuevo(nil)
	origen := escribirArchivo(t, "empleados.json", jsonEmpleados)
	rutaDB := filepath.Join(filepath.Dir(origen), "empresa.db")
	require.NoError(t, c.JSONaSQL(origen, rutaDB, "personal"))

	malo := escribirArchivo(t, "malo.json", `{"nombre": "x"}`)
	err := c.JSONaSQL(malo, rutaDB, "personal")
	assert.ErrorIs(t, err, models.ErrFormato)

	assert.Len(t, leerEmpleados(t, rutaDB, "personal"), 2)
}

func TestEscribirSQLite_NombreVacio(t *testing.T) {
	err := EscribirSQLite(Tabla{Columnas: []string{"a"}}, filepath.Join(t.TempDir(), "x.db"), "  ")
	assert.ErrorIs(t, err, models.ErrFormato)
}

func TestCreadorCSV(t *testing.T) {
	ruta := filepath.Join(t.TempDir(), NombreCSV("contactos"))
	assert.Equal(t, "contactos.csv", filepath.Base(ruta))

	creador, err := NuevoCreadorCSV(ruta, Encabezados("nombre, telefono ,ciudad"))
	require.NoError(t, err)

	require.NoError(t, creador.Agregar([]string{"Ana", "809", "Santiago"}))
	assert.ErrorIs(t, creador.Agregar([]string{"Luis", "829"}), models.ErrFormato)
	// la fila ya está en disco antes de cerrar
	assert.Equal(t, "nombre,telefono,ciudad\nAna,809,Santiago\n", leer(t, ruta))

	require.NoError(t, creador.Agregar([]string{"Eva", "849", "La Vega, RD"}))
	require.NoError(t, creador.Cerrar())
	assert.Equal(t, 2, creador.Filas())
	assert.Equal(t, "nombre,telefono,ciudad\nAna,809,Santiago\nEva,849,\"La Vega, RD\"\n", leer(t, ruta))
}

func TestNuevoCreadorCSV_SinEncabezado(t *testing.T) {
	_, err := NuevoCreadorCSV(filepath.Join(t.TempDir(), "x.csv"), Encabezados(""))
	assert.ErrorIs(t, err, models.ErrFormato)
}

func TestNombreCSV(t *testing.T) {
	assert.Equal(t, "datos.csv", NombreCSV("datos"))
	assert.Equal(t, "datos.CSV", NombreCSV(" datos.CSV "))
}

func TestCrearCSV(t *testing.T) {
	destino := filepath.Join(t.TempDir(), "lote")

	n, err := CrearCSV(destino, []string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "a,b\n1,2\n3,4\n", leer(t, destino+".csv"))

	n, err = CrearCSV(destino, []string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})
	assert.ErrorIs(t, err, models.ErrFormato)
	assert.Equal(t, 1, n)
	assert.Equal(t, "a,b\n1,2\n", leer(t, destino+".csv"))
}
