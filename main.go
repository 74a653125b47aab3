// Package main is the entry point for the pgassist CLI.
// It asks a Postgres database questions in plain language through a
// natural-language-to-SQL translation service.
package main

import (
	"pgassist/cli/cmd"
)

func main() {
	cmd.Execute()
}
