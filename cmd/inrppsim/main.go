package main

import (
	"os"

	"github.com/named-data/inrpp/cmd"
	"github.com/named-data/inrpp/executor"
)

func main() {
	// create a command tree
	tree := cmd.CmdTree{
		Name: "inrppsim",
		Help: "Paced, cache-aware NDN forwarding simulator",
		Sub: []*cmd.CmdTree{{
			Name: "run",
			Help: "Run the topology described by a configuration file",
			Fun:  executor.Main,
		}, {
			Name: "check",
			Help: "Validate a configuration file without running it",
			Fun:  executor.Check,
		}, {
			Name: "version",
			Help: "Print version and exit",
			Fun:  executor.PrintVersion,
		}},
	}

	// Parse the command line arguments
	args := os.Args
	args[0] = tree.Name
	tree.Execute(args)
}
