package main

import "github.com/lepinkainen/unroll/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
