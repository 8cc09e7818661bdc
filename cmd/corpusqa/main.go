package main

import "corpusqa/internal/cli"

func main() {
	cli.Execute()
}
