// Package main runs the finance API to manage users and their accounts.
package main

import (
	"os"

	_ "github.com/lib/pq"

	"github.com/cbk-gemmy/finance-platform/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
