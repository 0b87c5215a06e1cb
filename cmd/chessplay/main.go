// chessplay is a terminal chess game for two players at one keyboard, against
// a UCI engine, or against a remote opponent.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chessplay-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessplay-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up log, input and output files
	setupLogFile(cfg)
	setupInputFile(cfg)
	setupOutputFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		if cfg.Verbosity > 0 {
			fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

// setupInputFile configures the command source based on command-line flags.
func setupInputFile(cfg *config.Config) {
	if *inputFile == "" {
		return
	}
	file, err := os.Open(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input file %s: %v\n", *inputFile, err)
		os.Exit(1)
	}
	cfg.InputFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessplay [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess in the terminal.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes (-mode):\n")
	fmt.Fprintf(os.Stderr, "  local   Two players at one keyboard (default)\n")
	fmt.Fprintf(os.Stderr, "  engine  Play against a UCI engine (-engine, -movetime, -colour)\n")
	fmt.Fprintf(os.Stderr, "  host    Wait for a remote opponent on -addr and play White\n")
	fmt.Fprintf(os.Stderr, "  join    Connect to a host on -addr and play Black\n")
	fmt.Fprintf(os.Stderr, "\nMoves are entered as coordinates, e.g. e2e4 or a7a8q.\n")
}
