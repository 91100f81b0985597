package main

import "github.com/fernnotes/fern/cmd"

func main() {
	cmd.Execute()
}
