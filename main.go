package main

import (
	"os"

	"github.com/agriwater/optimizer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
