/*
Usage:

	votesim -t 30 -p 0.8 -c 3
	votesim -t 60 -p 0.5 -c 2 -o 10 --record run.msgpack
	votesim --config votesim.json -c 4
	votesim replay run.msgpack
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	err := newRootCmd(os.Stdout, os.Stderr).Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
