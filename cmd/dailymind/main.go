package main

import (
	"os"

	"github.com/roach88/dailymind/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
