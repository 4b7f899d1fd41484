// Package cli holds flag parsing and terminal output for the command-line
// entry points.
package cli

import "flag"

// ReconcileFlags are the flags for the reconcile command
type ReconcileFlags struct {
	File    string
	DryRun  bool
	Workers int
	Verbose bool
}

// ParseReconcileFlags parses command line flags for the reconcile command
func ParseReconcileFlags() *ReconcileFlags {
	flags := &ReconcileFlags{}
	flag.StringVar(&flags.File, "file", "", "CSV file of rows: target,candidate1,...")
	flag.BoolVar(&flags.DryRun, "dry-run", false, "Fit rows without recording the run")
	flag.IntVar(&flags.Workers, "workers", 0, "Worker goroutines for batch fitting (0 = from config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port    int
	Verbose bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (0 = from config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
