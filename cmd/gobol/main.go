package main

import (
	"fmt"
	"os"
)

const cliToolVersion = "gobol-cli 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runCommand(args[1:])
	case "check":
		return checkCommand(args[1:])
	case "repl":
		return replCommand(args[1:])
	default:
		return runCommand(args)
	}
}
