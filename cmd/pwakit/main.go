package main

import (
	"os"

	"github.com/supermodeltools/pwakit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
