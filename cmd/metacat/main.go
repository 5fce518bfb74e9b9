package main

import "github.com/metacat-io/metacat/cmd/metacat/cmd"

func main() {
	cmd.Execute()
}
