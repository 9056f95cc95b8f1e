package main

import "github.com/alexiusacademia/steelcct/cmd"

func main() {
	cmd.Execute()
}
