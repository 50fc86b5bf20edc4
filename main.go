package main

import "github.com/Australian-Structural-Biology-Computing/MultiQC/cmd"

func main() {
	cmd.Execute()
}
