package main

import (
	"os"

	"github.com/rockbox-tools/tagdb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
