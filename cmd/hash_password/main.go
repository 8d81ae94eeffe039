// hash_password genera la entrada de AUTH_OPERATORS para un operador.
//
//	go run ./cmd/hash_password -user ana -role bodeguero -password 'clave'
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/bodega-api/internal/application/auth"
)

func main() {
	user := flag.String("user", "", "username del operador")
	role := flag.String("role", "bodeguero", "rol: admin, bodeguero o lector")
	password := flag.String("password", "", "password en texto plano")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "falta -user")
		os.Exit(2)
	}
	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Printf("%s:%s:%s\n", *user, *role, hash)
}
