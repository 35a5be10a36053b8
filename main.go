package main

import "github.com/gaurav-prasanna/feedpipe/cmd"

func main() {
	cmd.Execute()
}
