// The main package for the sdtnames executable.
package main

import (
	"github.com/JakeFAU/sdtnames/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
