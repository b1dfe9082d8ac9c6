package main

import (
	"os"

	"github.com/dshills/branchreview/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
