package main

import "github.com/karitora/sonodex/cmd"

func main() {
	cmd.Execute()
}
