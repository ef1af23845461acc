package main

import (
	"github.com/nexusgamble/nexusgamble-go/internal/cli"
)

func main() {
	cli.Execute()
}
