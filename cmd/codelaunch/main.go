package main

import (
	"fmt"
	"os"

	"codelaunch/internal/cmd"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	if err := cmd.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
