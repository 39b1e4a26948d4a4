package main

import (
	"os"

	"github.com/Playwithbroken/stock-analysis-tool/cmd/stockd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
