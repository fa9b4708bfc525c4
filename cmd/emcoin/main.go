// cmd/emcoin/main.go
package main

import (
	"emcoin/internal/app"
	"emcoin/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
