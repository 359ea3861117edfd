package main

import "github.com/xvierd/timerdeck/cmd"

func main() {
	cmd.Execute()
}
