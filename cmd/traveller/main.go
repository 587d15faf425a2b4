package main

import "github.com/andrescamacho/traveller-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
