package main

import (
	"fmt"
	"os"

	"github.com/mkonrad/kebab"
)

func main() {
	if err := kebab.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
