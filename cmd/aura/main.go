package main

import "github.com/aurafm/aura/internal/cli"

func main() {
	cli.Execute()
}
