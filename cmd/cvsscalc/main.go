// Command cvsscalc scores CVSS v3.1 and v4.0 vectors, singly or in bulk.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cvsscalc:", err)
		os.Exit(1)
	}
}
