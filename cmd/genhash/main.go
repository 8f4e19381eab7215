// genhash imprime el hash bcrypt de la clave de la API para API_KEY_HASH.
// La clave se lee de la entrada estándar.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	fmt.Fprint(os.Stderr, "Clave de la API: ")
	clave, err := bufio.NewReader(os.Stdin).ReadString('\n')
	clave = strings.TrimSpace(clave)
	if clave == "" {
		fmt.Fprintln(os.Stderr, "la clave no puede estar vacía", err)
		os.Exit(1)
	}

	h, err := bcrypt.GenerateFromPassword([]byte(clave), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
