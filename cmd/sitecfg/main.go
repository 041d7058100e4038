package main

import (
	"os"

	"github.com/kevinreber/sitecfg/cmd/sitecfg/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
