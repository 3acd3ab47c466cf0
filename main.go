package main

import "github.com/cwbudde/mosaicforge/cmd"

func main() {
	cmd.Execute()
}
