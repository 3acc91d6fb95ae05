package main

import "github.com/mpapenbr/triathlon-pacer/cmd"

func main() {
	cmd.Execute()
}
