package main

import (
	"os"

	"github.com/metaphox/golox/cmd/golox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
