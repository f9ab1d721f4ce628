package main

import (
	"os"

	"github.com/thand-io/directory/cmd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
