// Command cargodist runs the link graph cargo distribution engine over a
// scenario file and prints the resulting flow tables.
//
// Usage:
//
//	cargodist validate scenario.yaml
//	cargodist run scenario.yaml --days 30 --metrics-addr :9100
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cargodist:", err)
		os.Exit(1)
	}
}
