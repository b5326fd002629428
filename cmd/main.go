// Package main runs the ledger API and its maintenance commands.
package main

import (
	"os"

	_ "github.com/lib/pq"

	"github.com/go-petr/ledger/cmd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
