// Copyright (C) 2021 The hazelight authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"
	"github.com/klauspost/cpuid"
	"github.com/hazelight/hazelight/internal/dehaze"
	"github.com/hazelight/hazelight/internal/ops"
	"github.com/hazelight/hazelight/internal/ops/haze"
	"github.com/hazelight/hazelight/internal/rest"
)

const version = "0.1.2"

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var out     = flag.String("out", "dehazed%d.jpg", "save output with given `pattern`, %d is replaced by the image number")
var quality = flag.Int("quality", 95, "JPEG quality for output files, ignored for other formats")
var logF    = flag.String("log", "", "append log output to `file` in addition to stdout")

var preset  = flag.String("preset", "default", "parameter preset, one of default, coarse")
var radius  = flag.Int("radius", 7, "min filter radius in pixels, window size is 2*radius+1")
var omega   = flag.Float64("omega", 0.95, "haze retention factor in [0,1], 1 removes all detected haze")
var tFloor  = flag.Float64("tFloor", 0.1, "lower clamp for the transmission estimate in (0,1]")
var topFrac = flag.Float64("topFrac", 0.001, "fraction of brightest dark channel pixels for the atmospheric light estimate in (0,1]")
var tMin    = flag.Float64("tMin", 0.1, "minimum transmission for radiance recovery in (0,1]")

var darkOut = flag.String("dark", "", "save dark channel maps with given `pattern`, e.g. dark%d.png")
var transOut= flag.String("trans", "", "save transmission maps with given `pattern`, e.g. trans%d.png")

var httpAddr= flag.String("http", ":8080", "serve: listen address")
var chroot  = flag.String("chroot", "", "serve: change filesystem root to `dir` before serving (requires root)")
var setuid  = flag.Int("setuid", -1, "serve: change user id before serving, -1=no change")

func main() {
	start:=time.Now()
	flag.Usage=func(){
 	    fmt.Fprintf(os.Stderr, `Hazelight removes atmospheric haze from photographs using the dark channel prior.
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (dehaze|dark|trans|serve|legal|version) (img0.jpg ... imgn.png)

Commands:
  dehaze  Remove haze from the input images
  dark    Compute and save dark channel maps of the input images
  trans   Compute and save transmission maps of the input images
  serve   Run a REST API server for dehazing requests
  legal   Show license and attribution information
  version Show version information

Flags:
`, os.Args[0])
	    flag.PrintDefaults()
	}
	flag.Parse()

	// Initialize logging to file in addition to stdout, if selected
	var logWriter io.Writer=os.Stdout
	if *logF!="" {
		logFile, err:=os.OpenFile(*logF, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
		if err!=nil {
			fmt.Fprintf(os.Stderr, "Unable to open logfile '%s': %s\n", *logF, err.Error())
			os.Exit(-1)
		}
		defer logFile.Close()
		buffered:=bufio.NewWriter(logFile)
		defer buffered.Flush()
		logWriter=io.MultiWriter(os.Stdout, buffered)
	}

	// Enable CPU profiling if flagged
	if *cpuprofile!="" {
		f, err := os.Create(*cpuprofile)
		if err!=nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %s\n", err.Error())
			os.Exit(-1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err!=nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %s\n", err.Error())
			os.Exit(-1)
		}
		defer pprof.StopCPUProfile()
	}

	args:=flag.Args()
	if len(args)<1 {
		flag.Usage()
		return
	}

	params, err:=paramsFromFlags()
	if err!=nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(-1)
	}

	ctx:=ops.NewContext(logWriter)

	switch args[0] {
	case "dehaze":
		opSeq:=ops.NewOpSequence(
			ops.NewOpLoadMany(args[1:]),
			haze.NewOpDehaze(params, *darkOut, *transOut),
			ops.NewOpSave(*out, *quality),
		)
		err=runSequence(opSeq, ctx)

	case "dark":
		opSeq:=ops.NewOpSequence(
			ops.NewOpLoadMany(args[1:]),
			haze.NewOpDarkChannel(params.WindowRadius, *out),
		)
		err=runSequence(opSeq, ctx)

	case "trans":
		opSeq:=ops.NewOpSequence(
			ops.NewOpLoadMany(args[1:]),
			haze.NewOpTransmission(params, *out),
		)
		err=runSequence(opSeq, ctx)

	case "serve":
		fmt.Fprintf(logWriter, "Hazelight %s serving on %s with %d threads on %s\n",
		            version, *httpAddr, ctx.MaxThreads, cpuid.CPU.BrandName)
		rest.MakeSandbox(*chroot, *setuid)
		err=rest.Serve(*httpAddr)

	case "legal":
		cmdLegal(logWriter)

	case "version":
		fmt.Fprintf(logWriter, "Version %s\n", version)
		fmt.Fprintf(logWriter, "CPU: %s, %d physical cores, %d logical cores\n",
		            cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)

	case "help", "?":
		flag.Usage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command '%s'\n\n", args[0])
		flag.Usage()
		return
	}

	if err!=nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(-1)
	}

	elapsed:=time.Now().Sub(start)
	fmt.Fprintf(logWriter, "\nDone after %v\n", elapsed)

	// Store memory profile if flagged
	if *memprofile!="" {
		f, err := os.Create(*memprofile)
		if err!=nil {
			fmt.Fprintf(os.Stderr, "Could not create memory profile: %s\n", err.Error())
			os.Exit(-1)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err!=nil {
			fmt.Fprintf(os.Stderr, "Could not write memory profile: %s\n", err.Error())
			os.Exit(-1)
		}
	}
}

// Builds pipeline parameters from the preset flag, with explicitly given
// pipeline flags overriding individual preset values
func paramsFromFlags() (dehaze.Params, error) {
	p, err:=dehaze.NewParamsPreset(*preset)
	if err!=nil { return p, err }
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "radius":  p.WindowRadius     =*radius
		case "omega":   p.Omega            =float32(*omega)
		case "tFloor":  p.TransmissionFloor=float32(*tFloor)
		case "topFrac": p.TopFraction      =float32(*topFrac)
		case "tMin":    p.MinTransmission  =float32(*tMin)
		}
	})
	return p, p.Valid()
}

// Makes promises for the given sequence and materializes them with full parallelism
func runSequence(opSeq *ops.OpSequence, ctx *ops.Context) error {
	promises, err:=opSeq.MakePromises(nil, ctx)
	if err!=nil { return err }
	_, err=ops.MaterializeAll(promises, ctx.MaxThreads)
	return err
}
