/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package executor

import (
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/named-data/inrpp/core"
	"github.com/pkg/errors"
)

// ProfilerConfig names the output files of the profiles to take. Empty names disable a profile.
type ProfilerConfig struct {
	CpuProfile   string
	MemProfile   string
	BlockProfile string
}

// Profiler records Go runtime profiles of a simulation run.
type Profiler struct {
	config  ProfilerConfig
	cpuFile *os.File
	block   *pprof.Profile
}

// NewProfiler creates a profiler writing to the configured files.
func NewProfiler(config ProfilerConfig) *Profiler {
	return &Profiler{config: config}
}

func (p *Profiler) String() string {
	return "Profiler"
}

// Start begins CPU and block profiling.
func (p *Profiler) Start() error {
	if p.config.CpuProfile != "" {
		var err error
		p.cpuFile, err = os.Create(p.config.CpuProfile)
		if err != nil {
			return errors.Wrap(err, "unable to open output file for CPU profile")
		}

		core.LogInfo(p, "Profiling CPU - outputting to ", p.config.CpuProfile)
		if err := pprof.StartCPUProfile(p.cpuFile); err != nil {
			p.cpuFile.Close()
			p.cpuFile = nil
			return errors.Wrap(err, "unable to start CPU profile")
		}
	}

	if p.config.BlockProfile != "" {
		core.LogInfo(p, "Profiling blocking operations - outputting to ", p.config.BlockProfile)
		runtime.SetBlockProfileRate(1)
		p.block = pprof.Lookup("block")
	}
	return nil
}

// Stop ends profiling and writes the block and memory profiles.
func (p *Profiler) Stop() error {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		p.cpuFile.Close()
		p.cpuFile = nil
	}

	if p.block != nil {
		if err := writeProfile(p.config.BlockProfile, p.block.WriteTo); err != nil {
			return errors.Wrap(err, "unable to write block profile")
		}
	}

	if p.config.MemProfile != "" {
		core.LogInfo(p, "Profiling memory - outputting to ", p.config.MemProfile)
		runtime.GC()
		if err := writeProfile(p.config.MemProfile, pprof.Lookup("heap").WriteTo); err != nil {
			return errors.Wrap(err, "unable to write memory profile")
		}
	}
	return nil
}

func writeProfile(file string, write func(w io.Writer, debug int) error) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f, 0)
}
