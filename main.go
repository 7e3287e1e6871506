package main

import (
	_ "embed"
	"steeple/cmd"

	_ "golang.org/x/crypto/x509roots/fallback" // We need this to make TLS work in scratch containers
	_ "time/tzdata"                            // Bundled zone data so America/Chicago resolves in scratch containers
)

func main() {
	cmd.Execute()
}
