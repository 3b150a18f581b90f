package main

import (
	"context"
	"os"

	"github.com/shapestone/shape-csv2json/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := cli.Execute(context.Background(), version, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
