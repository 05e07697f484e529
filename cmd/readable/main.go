package main

import (
	cmd "github.com/kaelwright/readable/internal/cli"
)

func main() {
	cmd.Execute()
}
