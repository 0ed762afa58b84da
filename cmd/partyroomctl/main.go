package main

import (
	"github.com/pocha-games/partyroom/internal/cli"
)

func main() {
	cli.Execute()
}
