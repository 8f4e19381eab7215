// Package consola contiene los menús interactivos de texto del registro de
// personas y del conversor de datos.
package consola

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Terminal lee respuestas línea por línea y escribe mensajes. Se construye
// sobre cualquier io.Reader/io.Writer para poder probar los menús.
type Terminal struct {
	lector *bufio.Reader
	salida io.Writer
}

// NuevaTerminal crea una terminal sobre la entrada y salida dadas
func NuevaTerminal(entrada io.Reader, salida io.Writer) *Terminal {
	return &Terminal{lector: bufio.NewReader(entrada), salida: salida}
}

// Preguntar muestra el texto y devuelve la línea escrita sin espacios en
// los extremos. Al terminar la entrada devuelve io.EOF.
func (t *Terminal) Preguntar(texto string) (string, error) {
	fmt.Fprint(t.salida, texto)
	linea, err := t.lector.ReadString('\n')
	if errors.Is(err, io.EOF) && linea == "" {
		fmt.Fprintln(t.salida)
		return "", io.EOF
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(linea), nil
}

// Mostrar escribe una línea con formato
func (t *Terminal) Mostrar(formato string, args ...any) {
	fmt.Fprintf(t.salida, formato+"\n", args...)
}

// Separador escribe una línea de n caracteres c
func (t *Terminal) Separador(c string, n int) {
	fmt.Fprintln(t.salida, strings.Repeat(c, n))
}

// errIDInvalido se devuelve cuando el id escrito no es un entero
var errIDInvalido = errors.New("el ID debe ser un número entero positivo")

func leerID(texto string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(texto))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errIDInvalido, texto)
	}
	return id, nil
}
