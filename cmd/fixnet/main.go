// Package main provides the fixnet CLI: the bit-exact fixed-point CNN
// reference model and its file tools.
package main

import (
	"fmt"
	"log"
	"os"
)

const version = "v0.1.0"

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"run", "Run the pipeline over a directory of quantized inputs", runCmd},
	{"plan", "Print the stage list of a topology", planCmd},
	{"diff", "Compare two stage files or two stage trees line by line", diffCmd},
	{"verify", "Check a stage tree against its manifest checksums", verifyCmd},
	{"split", "Split 64-bit words into 16-bit words", splitCmd},
	{"merge", "Merge 16-bit words into 64-bit words", mergeCmd},
	{"segment", "Cut an input feature map into overlapping row tiles", segmentCmd},
	{"quantize", "Convert decimal numbers to Q3.13 bit strings and back", quantizeCmd},
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	switch name {
	case "version":
		fmt.Printf("fixnet %s\n", version)
		return
	case "help", "-h", "--help":
		usage()
		return
	}

	for _, c := range commands {
		if c.name == name {
			if err := c.run(os.Args[2:]); err != nil {
				log.Fatalf("%s: %v", name, err)
			}
			return
		}
	}

	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Println("fixnet - bit-exact Q3.13 fixed-point CNN reference model")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	for _, c := range commands {
		fmt.Printf("  %-10s %s\n", c.name, c.usage)
	}
	fmt.Printf("  %-10s %s\n", "version", "Show version")
	fmt.Println("\nRun 'fixnet <command> -h' for command flags.")
}
