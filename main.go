//go:build !js

package main

import (
	"os"

	"hackasm/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
