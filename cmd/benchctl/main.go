package main

import (
	"os"

	"github.com/kiranshivaraju/latencybench/internal/cli"
)

func main() {
	os.Exit(int(cli.Run()))
}
