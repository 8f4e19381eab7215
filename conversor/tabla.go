package conversor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Tabla es el contenido completo de un archivo de origen en memoria. Cada
// celda es nil, int64, float64, bool, string o un valor JSON anidado
// (map[string]any / []any).
type Tabla struct {
	Columnas []string
	Filas    [][]any
}

// tipoColumna es la afinidad inferida de una columna
type tipoColumna int

const (
	tipoVacio tipoColumna = iota
	tipoEntero
	tipoReal
	tipoBool
	tipoTexto
)

// inferirCeldas convierte las celdas de texto de un CSV columna por
// columna: si todas las celdas no vacías son enteras la columna es entera,
// si son numéricas es real, y si no queda como texto. Las celdas vacías
// quedan nil.
func inferirCeldas(columnas []string, crudas [][]string) [][]any {
	filas := make([][]any, len(crudas))
	for i := range filas {
		filas[i] = make([]any, len(columnas))
	}
	for j := range columnas {
		tipo := tipoVacio
		for _, fila := range crudas {
			if fila[j] == "" {
				continue
			}
			tipo = combinar(tipo, tipoDeTexto(fila[j]))
		}
		for i, fila := range crudas {
			filas[i][j] = convertirTexto(fila[j], tipo)
		}
	}
	return filas
}

func tipoDeTexto(s string) tipoColumna {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return tipoEntero
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return tipoReal
	}
	return tipoTexto
}

func combinar(a, b tipoColumna) tipoColumna {
	switch {
	case a == tipoVacio:
		return b
	case b == tipoVacio || a == b:
		return a
	case (a == tipoEntero && b == tipoReal) || (a == tipoReal && b == tipoEntero):
		return tipoReal
	}
	return tipoTexto
}

func convertirTexto(s string, tipo tipoColumna) any {
	if s == "" {
		return nil
	}
	switch tipo {
	case tipoEntero:
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	case tipoReal:
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}
	return s
}

// tipoDeValor clasifica una celda ya convertida
func tipoDeValor(v any) tipoColumna {
	switch v.(type) {
	case nil:
		return tipoVacio
	case int64:
		return tipoEntero
	case float64:
		return tipoReal
	case bool:
		return tipoBool
	}
	return tipoTexto
}

// tipoDeColumna combina los tipos de todas las celdas de la columna j
func (t Tabla) tipoDeColumna(j int) tipoColumna {
	tipo := tipoVacio
	for _, fila := range t.Filas {
		tv := tipoDeValor(fila[j])
		if tv == tipoVacio {
			continue
		}
		if tipo == tipoBool || tv == tipoBool {
			if tipo != tipoVacio && tipo != tv {
				return tipoTexto
			}
			tipo = tv
			continue
		}
		tipo = combinar(tipo, tv)
	}
	return tipo
}

// textoCelda da la representación de una celda en un CSV
func textoCelda(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// numeroJSON convierte un json.Number en int64 o float64
func numeroJSON(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("número inválido %q", n.String())
	}
	return f, nil
}

// normalizarJSON reemplaza json.Number en todo el valor
func normalizarJSON(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		return numeroJSON(x)
	case map[string]any:
		for k, e := range x {
			n, err := normalizarJSON(e)
			if err != nil {
				return nil, err
			}
			x[k] = n
		}
	case []any:
		for i, e := range x {
			n, err := normalizarJSON(e)
			if err != nil {
				return nil, err
			}
			x[i] = n
		}
	}
	return v, nil
}

// registro es una fila serializada como objeto JSON respetando el orden de
// las columnas
type registro struct {
	columnas []string
	valores  []any
}

func (r registro) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columnas {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := escribirValor(&buf, col); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := escribirValor(&buf, r.valores[i]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// escribirValor serializa v sin escapar <, > y &
func escribirValor(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode agrega un salto de línea al final
	buf.Truncate(buf.Len() - 1)
	return nil
}

// nombresUnicos resuelve encabezados vacíos o repetidos como "Unnamed: i"
// y "col.1", "col.2"
func nombresUnicos(encabezado []string) []string {
	vistos := make(map[string]int, len(encabezado))
	nombres := make([]string, len(encabezado))
	for i, nombre := range encabezado {
		if nombre == "" {
			nombre = fmt.Sprintf("Unnamed: %d", i)
		}
		base := nombre
		for vistos[nombre] > 0 {
			nombre = fmt.Sprintf("%s.%d", base, vistos[base])
			vistos[base]++
		}
		vistos[nombre]++
		nombres[i] = nombre
	}
	return nombres
}
