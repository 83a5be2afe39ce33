package main

import (
	"github.com/fabricsight/fabricsight/pkg/cli"
)

func main() {
	cli.Execute()
}
