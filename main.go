package main

import (
	"github.com/eco-evo-genomics/haplopurge/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
