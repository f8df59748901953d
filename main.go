package main

import (
	"fmt"
	"os"

	"login_regression/presentation/terminal"
)

var version = "0.1.0"

func main() {
	app := terminal.NewApp(version)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
