// Package main is the entry point for the travel-search server and CLI.
package main

import (
	"github.com/donaldgifford/travel-search/cmd/travel-search/cmd"
)

func main() {
	cmd.Execute()
}
