package main

import "reqtool/internal/cli"

func main() {
	cli.Execute()
}
