package main

import (
	"github.com/kshamiyah/investbot/internal/cli"
)

func main() {
	cli.Execute()
}
