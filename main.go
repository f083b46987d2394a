package main

import (
	"os"

	"github.com/ihatemodels/todoterm/internal/cli"
)

var Version = "dev"

func main() {
	os.Exit(cli.Execute(Version))
}
