package main

import "github.com/gaurav-prasanna/pagemd/cmd"

func main() {
	cmd.Execute()
}
