/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package executor

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/face"
	"github.com/named-data/inrpp/fw"
	"github.com/named-data/inrpp/table"
)

// Version of the simulator.
var Version string

type mainOptions struct {
	logFile      string
	metrics      bool
	profiler     ProfilerConfig
	printVersion bool
}

func parseArgs(name string, args []string, withRun bool) (*mainOptions, string) {
	opts := &mainOptions{}

	flagset := flag.NewFlagSet(name, flag.ExitOnError)
	flagset.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <config-file> [options]\n", args[0])
		flagset.PrintDefaults()
	}

	flagset.BoolVar(&opts.printVersion, "version", false, "Print version and exit")
	flagset.StringVar(&opts.logFile, "log-file", "", "Write logs to the specified file instead of stdout")
	if withRun {
		flagset.BoolVar(&opts.metrics, "metrics", false, "Print all gathered metrics after the report")
		flagset.StringVar(&opts.profiler.CpuProfile, "cpu-profile", "", "Enable CPU profiling (output to specified file)")
		flagset.StringVar(&opts.profiler.MemProfile, "mem-profile", "", "Enable memory profiling (output to specified file)")
		flagset.StringVar(&opts.profiler.BlockProfile, "block-profile", "", "Enable block profiling (output to specified file)")
	}
	flagset.Parse(args[1:])

	if opts.printVersion {
		printVersion()
		os.Exit(0)
	}

	configfile := flagset.Arg(0)
	if configfile == "" {
		flagset.Usage()
		os.Exit(3)
	}
	return opts, configfile
}

func printVersion() {
	fmt.Fprintln(os.Stderr, "inrppsim: paced, cache-aware NDN forwarding simulator")
	fmt.Fprintln(os.Stderr, "Version: ", Version)
	fmt.Fprintln(os.Stderr, "Released under the terms of the MIT License")
}

// setup loads the configuration file and configures every subsystem from it.
func setup(configfile string, logFile string) error {
	if err := core.LoadConfig(configfile); err != nil {
		return err
	}
	if err := core.InitializeLogger(logFile); err != nil {
		return err
	}
	if err := table.Configure(); err != nil {
		return err
	}
	if err := fw.Configure(); err != nil {
		return err
	}
	face.Configure()
	return nil
}

// Main runs the simulation described by a configuration file and prints its report.
func Main(args []string) {
	opts, configfile := parseArgs("inrppsim", args, true)
	core.Version = Version
	core.StartTimestamp = time.Now()

	if err := setup(configfile, opts.logFile); err != nil {
		fmt.Fprintln(os.Stderr, "Unable to load configuration: "+err.Error())
		os.Exit(3)
	}
	defer core.ShutdownLogger()

	e, err := NewExecutor(&core.GetConfig().Sim)
	if err != nil {
		core.LogFatal("Main", "Unable to build topology: ", err)
		os.Exit(3)
	}

	profiler := NewProfiler(opts.profiler)
	if err := profiler.Start(); err != nil {
		core.LogFatal("Main", "Unable to start profiler: ", err)
		os.Exit(2)
	}
	report, err := e.Run()
	if err := profiler.Stop(); err != nil {
		core.LogError("Main", "Unable to write profiles: ", err)
	}
	if err != nil {
		core.LogFatal("Main", "Simulation failed: ", err)
		os.Exit(2)
	}

	if err := report.Write(os.Stdout); err != nil {
		core.LogError("Main", "Unable to write report: ", err)
	}
	if opts.metrics {
		fmt.Println()
		if err := report.WriteMetrics(os.Stdout); err != nil {
			core.LogError("Main", "Unable to write metrics: ", err)
		}
	}
}

// Check validates a configuration file by building its topology without running it.
func Check(args []string) {
	opts, configfile := parseArgs("inrppsim check", args, false)

	if err := setup(configfile, opts.logFile); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration: "+err.Error())
		os.Exit(3)
	}
	defer core.ShutdownLogger()

	e, err := NewExecutor(&core.GetConfig().Sim)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid topology: "+err.Error())
		os.Exit(3)
	}
	fmt.Fprintf(os.Stdout, "%s: %d nodes, %d consumers, %d producers\n",
		configfile, len(e.nodes), len(e.consumers), len(e.producers))
}

// PrintVersion prints version information.
func PrintVersion(args []string) {
	printVersion()
}
