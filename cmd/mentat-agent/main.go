package main

import (
	"os"

	"github.com/mentatlab/mentat-agent/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
