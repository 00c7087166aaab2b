package main

import (
	"os"

	"github.com/brandonbloom/gopath-go/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
