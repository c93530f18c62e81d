package main

import (
	"github.com/meshbridge/meshbridge/cmd"
)

func main() {
	cmd.Execute()
}
