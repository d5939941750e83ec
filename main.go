// ./main.go
package main

import (
	"github.com/xkilldash9x/anchorpop/cmd"
)

// main is the entry point for the anchorpop CLI.
func main() {
	// Execute the root command defined in the cmd package. It handles all
	// command-line parsing, configuration, and execution.
	cmd.Execute()
}
