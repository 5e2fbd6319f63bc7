package main

import "github.com/hhojgaard/altiplan/internal/cli"

func main() {
	cli.Execute()
}
