// Package main is the entry point for the tsvwriter CLI.
//
// tsvwriter previews how tagged Go structs are exported as delimited text:
//   - header: the header line of a type
//   - plan: the plan tree of a type, as YAML or a debug dump
package main

import (
	"tsvwriter/internal/cmd"
)

func main() {
	cmd.Execute()
}
