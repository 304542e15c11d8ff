package utils

import (
	"log"

	"github.com/jwaldrip/odin/cli"
)

// verbosity: 0 quiet, 1 normal, 2 per-family detail
var verbosity = 1

// SetVerbosity applies the global -v/-q flags. -q wins over -v.
func SetVerbosity(verbose, quiet bool) {
	if verbose {
		verbosity = 2
	}
	if quiet {
		verbosity = 0
	}
}

func Logf(format string, v ...interface{}) {
	if verbosity >= 1 {
		log.Printf(format, v...)
	}
}

func Vlogf(format string, v ...interface{}) {
	if verbosity >= 2 {
		log.Printf(format, v...)
	}
}

// ParseGlobalArgs reads the flags defined on the app itself.
func ParseGlobalArgs(c cli.Command) {
	SetVerbosity(BoolFlag(c, "v"), BoolFlag(c, "q"))
}

func StringFlag(c cli.Command, name string) string {
	return c.Flag(name).String()
}

func IntFlag(c cli.Command, name string) int {
	v, ok := c.Flag(name).Get().(int)
	if !ok {
		log.Fatalf("[IntFlag] args '%s': %v set error\n", name, c.Flag(name).String())
	}
	return v
}

func BoolFlag(c cli.Command, name string) bool {
	v, ok := c.Flag(name).Get().(bool)
	if !ok {
		log.Fatalf("[BoolFlag] args '%s': %v set error\n", name, c.Flag(name).String())
	}
	return v
}

func AbsInt(a int) int {
	if a < 0 {
		return -a
	} else {
		return a
	}
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	} else {
		return b
	}
}

func MinInt(a, b int) int {
	if a > b {
		return b
	} else {
		return a
	}
}
