// Package pprof adds profiling support to the mdsite program.
package pprof

import (
	"fmt"
	"os"
	"runtime/pprof"

	"src.mdsite.sh/pkg/logutil"
	"src.mdsite.sh/pkg/prog"
)

var logger = logutil.GetLogger("[pprof] ")

// Program adds support for the -cpuprofile and -allocsprofile flags. It never
// runs by itself; the profiles are finished after the program that runs.
type Program struct {
	cpuProfile    string
	allocsProfile string
}

func (p *Program) RegisterFlags(f *prog.FlagSet) {
	f.StringVar(&p.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	f.StringVar(&p.allocsProfile, "allocsprofile", "", "write memory allocation profile to file")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	var cleanups []func([3]*os.File)
	if p.cpuProfile != "" {
		f, err := os.Create(p.cpuProfile)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot create CPU profile:", err)
			fmt.Fprintln(fds[2], "Continuing without CPU profiling.")
		} else {
			if err := pprof.StartCPUProfile(f); err != nil {
				fmt.Fprintln(fds[2], "Warning: cannot start CPU profile:", err)
				f.Close()
				return prog.NextProgram(cleanups...)
			}
			logger.Println("writing CPU profile to", p.cpuProfile)
			cleanups = append(cleanups, func([3]*os.File) {
				pprof.StopCPUProfile()
				f.Close()
			})
		}
	}
	if p.allocsProfile != "" {
		f, err := os.Create(p.allocsProfile)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot create memory allocation profile:", err)
			fmt.Fprintln(fds[2], "Continuing without memory allocation profiling.")
		} else {
			cleanups = append(cleanups, func([3]*os.File) {
				if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
					logger.Println("cannot write memory allocation profile:", err)
				}
				f.Close()
			})
		}
	}
	return prog.NextProgram(cleanups...)
}
