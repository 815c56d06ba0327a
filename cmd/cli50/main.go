package main

import "github.com/cs50/cli50/cmd/cli50/cmd"

func main() {
	cmd.Execute()
}
