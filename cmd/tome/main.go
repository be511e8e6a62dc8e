package main

import "github.com/metcalfc/tome/internal/cli"

func main() {
	cli.Execute()
}
