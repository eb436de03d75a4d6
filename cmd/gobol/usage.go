package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  gobol <file.gb>")
	fmt.Fprintln(os.Stderr, "  gobol run [--interp] <file.gb>")
	fmt.Fprintln(os.Stderr, "  gobol check <file.gb>")
	fmt.Fprintln(os.Stderr, "  gobol repl")
}
