package main

import "github.com/gaurav-prasanna/luxescript/cmd"

func main() {
	cmd.Execute()
}
