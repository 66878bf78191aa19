package main

import "github.com/sergev/uoled/cmd"

func main() {
	cmd.Execute()
}
